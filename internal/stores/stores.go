package stores

import (
	sq "github.com/Masterminds/squirrel"
)

// psq is the PostgreSQL statement builder with dollar placeholders.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isoDate is the layout for calendar-date columns in the rollup tables.
const isoDate = "2006-01-02"

// BreakdownColumn names a sessions column a report breakdown may group by.
type BreakdownColumn string

const (
	ByDeviceType   BreakdownColumn = "device_type"
	ByOSName       BreakdownColumn = "os_name"
	ByBrowser      BreakdownColumn = "browser"
	ByLanguageCode BreakdownColumn = "language_code"
	ByCountry      BreakdownColumn = "country"
	ByCity         BreakdownColumn = "city"
	ByNetworkType  BreakdownColumn = "network_type"
)

// ValidBreakdownColumns guards against grouping by arbitrary column names.
var ValidBreakdownColumns = map[BreakdownColumn]bool{
	ByDeviceType:   true,
	ByOSName:       true,
	ByBrowser:      true,
	ByLanguageCode: true,
	ByCountry:      true,
	ByCity:         true,
	ByNetworkType:  true,
}
