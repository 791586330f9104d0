package models

// ReportRange echoes the resolved inclusive date window of a report,
// formatted as ISO calendar dates in UTC.
type ReportRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Summary holds the scalar counters at the top of a report.
type Summary struct {
	DishViews          int64   `json:"dishViews"`
	UniqueVisitors     int64   `json:"uniqueVisitors"`
	Sessions           int64   `json:"sessions"`
	AvgDurationSeconds float64 `json:"avgDurationSeconds"`
	Favorites          int64   `json:"favorites"`
	AvgScrollDepth     float64 `json:"avgScrollDepth"`
	MediaErrors        int64   `json:"mediaErrors"`
}

// DailyPoint is one day of the report timeseries.
type DailyPoint struct {
	Date     string `json:"date"`
	Views    int64  `json:"views"`
	Sessions int64  `json:"sessions"`
	Visitors int64  `json:"visitors"`
}

// EntityStat is a top-N entry for a dish or menu section. Name is resolved
// via translation lookup and falls back to the raw id.
type EntityStat struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Views     int64  `json:"views"`
	Favorites int64  `json:"favorites"`
}

// BreakdownEntry is a grouped session count for one categorical attribute.
// Missing values are coerced to the key "unknown".
type BreakdownEntry struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// PWAStats reports progressive-web-app adoption. Rate is installed/total
// with a zero denominator yielding 0.
type PWAStats struct {
	Installed int64   `json:"installed"`
	Total     int64   `json:"total"`
	Rate      float64 `json:"rate"`
}

// HourlyPoint is one bucket of the 24-hour traffic histogram.
type HourlyPoint struct {
	Hour     int   `json:"hour"`
	Sessions int64 `json:"sessions"`
}

// FunnelStage is one ordered engagement stage. DropoffPct is the percentage
// decrease from the previous stage (0 for the first stage and whenever the
// previous stage count is 0).
type FunnelStage struct {
	Stage      string  `json:"stage"`
	Count      int64   `json:"count"`
	DropoffPct float64 `json:"dropoffPct"`
}

// FlowTransition is one entry-page to exit-page transition count.
type FlowTransition struct {
	EntryPage string `json:"entryPage"`
	ExitPage  string `json:"exitPage"`
	Count     int64  `json:"count"`
}

// CartMetrics holds the cart funnel counters from the daily cart rollup.
type CartMetrics struct {
	CartsCreated   int64   `json:"cartsCreated"`
	ItemsAdded     int64   `json:"itemsAdded"`
	CartsAbandoned int64   `json:"cartsAbandoned"`
	CartsCompleted int64   `json:"cartsCompleted"`
	AvgCartValue   float64 `json:"avgCartValue"`
	ConversionRate float64 `json:"conversionRate"`
}

// AnalyticsReport is the composite output of the aggregation engine. It is a
// point-in-time snapshot built fresh on every query and never mutated after
// construction.
type AnalyticsReport struct {
	Range            ReportRange      `json:"range"`
	Summary          Summary          `json:"summary"`
	Timeseries       []DailyPoint     `json:"timeseries"`
	TopDishes        []EntityStat     `json:"topDishes"`
	TopSections      []EntityStat     `json:"topSections"`
	Devices          []BreakdownEntry `json:"devices"`
	OperatingSystems []BreakdownEntry `json:"operatingSystems"`
	Browsers         []BreakdownEntry `json:"browsers"`
	Languages        []BreakdownEntry `json:"languages"`
	Countries        []BreakdownEntry `json:"countries"`
	Cities           []BreakdownEntry `json:"cities"`
	Networks         []BreakdownEntry `json:"networks"`
	PWA              PWAStats         `json:"pwa"`
	HourlyTraffic    []HourlyPoint    `json:"hourlyTraffic"`
	Funnel           []FunnelStage    `json:"funnel"`
	Flows            []FlowTransition `json:"flows"`
	QRAttribution    []BreakdownEntry `json:"qrAttribution"`
	Cart             CartMetrics      `json:"cart"`
}
