package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when the resolver is not initialized.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// Location is the subset of a GeoIP record attached to sessions.
type Location struct {
	CountryCode string
	City        string
}

// Resolver resolves visitor locations from IP addresses.
//
//go:generate mockgen -source=resolver.go -destination=./mocks/resolver_mock.go -package=mocks
type Resolver interface {
	Locate(ip string) (Location, error)
}

// DBResolver provides lookups backed by a MaxMind GeoIP2 city database.
type DBResolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the GeoIP database at the given path. When the path is
// empty, nil is returned and enrichment is disabled.
func NewResolver(path string) (*DBResolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &DBResolver{reader: reader}, nil
}

// Locate returns the ISO country code and city name for the provided IP.
func (r *DBResolver) Locate(ip string) (Location, error) {
	if r == nil || r.reader == nil {
		return Location{}, ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Location{}, fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.City(parsed)
	if err != nil {
		return Location{}, fmt.Errorf("geoip: lookup city: %w", err)
	}
	if record == nil {
		return Location{}, nil
	}
	loc := Location{CountryCode: record.Country.IsoCode}
	if name, ok := record.City.Names["en"]; ok {
		loc.City = name
	}
	return loc, nil
}

// Close closes the underlying database reader.
func (r *DBResolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
