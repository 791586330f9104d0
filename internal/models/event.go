package models

import "time"

// EventType enumerates the visitor actions the pipeline understands. The set
// is open: unknown types are stored verbatim so new client versions do not
// break ingestion.
type EventType string

const (
	EventViewDish    EventType = "viewdish"
	EventFavorite    EventType = "favorite"
	EventRating      EventType = "rating"
	EventShare       EventType = "share"
	EventScrollDepth EventType = "scrolldepth"
	EventMediaError  EventType = "mediaerror"
)

// Event is a single timestamped visitor action within a session. Value is a
// free-form payload (e.g. {"rating": 4, "comment": "..."} or
// {"platform": "whatsapp"}); numeric ratings and scroll depths are lifted
// into NumericValue at ingestion so they can be aggregated in SQL.
type Event struct {
	Type       EventType      `json:"type"`
	EntityID   string         `json:"entity_id,omitempty"`
	EntityType string         `json:"entity_type,omitempty"`
	Value      map[string]any `json:"value,omitempty"`
	Timestamp  time.Time      `json:"ts"`
}

// EventBatch is one delivery unit from a Session Collector.
type EventBatch struct {
	SessionID    string   `json:"session_id"`
	RestaurantID string   `json:"restaurant_id"`
	Events       []*Event `json:"events"`
}
