package models

import "time"

// Session identifies one continuous visit by one visitor to one restaurant's
// menu. The durable record lives in the sessions table; environment columns
// are filled from the collector's probe plus server-side enrichment
// (user-agent parsing, geoip). NULL columns are later bucketed as "unknown"
// by the report breakdowns.
type Session struct {
	ID              string
	RestaurantID    string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds *int64
	DeviceType      string
	OSName          string
	Browser         string
	NetworkType     string
	LanguageCode    string
	Country         string
	City            string
	Referrer        string
	PWAInstalled    bool
	UserID          string
	UTMSource       string
	UTMMedium       string
	UTMCampaign     string
}
