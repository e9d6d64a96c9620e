// Package geo resolves a best-effort city/region/country for the visitor:
// browser coordinates plus reverse geocoding when high accuracy is asked
// for, IP lookup otherwise or when that fails. No failure escapes as
// anything but an unknown location.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
)

// ErrNoLocation is reported when every lookup path failed.
var ErrNoLocation = errors.New("geo: location unavailable")

// State is where a lookup is.
type State int

const (
	Idle State = iota
	AwaitingPermission
	AwaitingHighAccuracy
	AwaitingIPFallback
	Resolved
	Failed
)

var stateNames = [...]string{"idle", "awaiting-permission", "awaiting-high-accuracy", "awaiting-ip-fallback", "resolved", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Location is what the lookups agree on.
type Location struct {
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

// Known reports whether there is a city to show.
func (l Location) Known() bool { return l.City != "" }

// Coordinates is a browser position fix.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// PositionOptions mirror the browser geolocation options.
type PositionOptions struct {
	HighAccuracy bool
	TimeoutMs    int
	MaximumAgeMs int
}

// Provider is the platform side of a lookup. Callbacks may arrive at any
// later point on the event loop.
type Provider interface {
	HasGeolocation() bool
	CurrentPosition(opts PositionOptions, done func(Coordinates, error))
	Fetch(url string, done func(body []byte, err error))
}

type ipLookup struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryName string `json:"country_name"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// ParseIPLookup decodes an ipapi.co style response.
func ParseIPLookup(body []byte) (Location, error) {
	var r ipLookup
	if err := json.Unmarshal(body, &r); err != nil {
		return Location{}, fmt.Errorf("geo: ip lookup: %w", err)
	}
	if r.Error {
		return Location{}, fmt.Errorf("geo: ip lookup: %s", r.Reason)
	}
	return Location{City: r.City, Region: r.Region, Country: r.CountryName}, nil
}

type adminArea struct {
	Name string `json:"name"`
}

type reverseGeocode struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
	LocalityInfo         struct {
		Administrative []adminArea `json:"administrative"`
	} `json:"localityInfo"`
}

// ParseReverseGeocode decodes a bigdatacloud reverse-geocode response,
// falling back through locality and the administrative areas for missing
// fields.
func ParseReverseGeocode(body []byte) (Location, error) {
	var r reverseGeocode
	if err := json.Unmarshal(body, &r); err != nil {
		return Location{}, fmt.Errorf("geo: reverse geocode: %w", err)
	}
	admin := r.LocalityInfo.Administrative
	loc := Location{City: r.City, Region: r.PrincipalSubdivision, Country: r.CountryName}
	if loc.City == "" {
		loc.City = r.Locality
	}
	if loc.City == "" && len(admin) > 0 {
		loc.City = admin[0].Name
	}
	if loc.Region == "" && len(admin) > 1 {
		loc.Region = admin[1].Name
	}
	return loc, nil
}

// ReverseGeocodeURL builds the reverse-geocode request for c.
func ReverseGeocodeURL(base string, c Coordinates) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	q.Set("localityLanguage", "en")
	return base + "?" + q.Encode()
}

// Locator runs one lookup through the state machine:
//
//	idle -> awaiting-permission -> awaiting-high-accuracy -> resolved
//	                 \                     \
//	                  +-> awaiting-ip-fallback -> resolved | failed
//
// Without high accuracy (or without browser geolocation) it starts at the
// IP fallback.
type Locator struct {
	cfg          config.Geo
	provider     Provider
	highAccuracy bool
	log          zerolog.Logger

	state  State
	loc    Location
	err    error
	closed bool

	// OnDone receives the outcome once. err is ErrNoLocation when nothing
	// could be resolved.
	OnDone func(loc Location, err error)
}

// NewLocator returns an idle locator.
func NewLocator(cfg config.Geo, p Provider, highAccuracy bool) *Locator {
	return &Locator{cfg: cfg, provider: p, highAccuracy: highAccuracy, log: common.Component("geo")}
}

// Start begins the lookup. It does nothing unless the locator is idle.
func (l *Locator) Start() {
	if l.state != Idle || l.closed {
		return
	}
	if l.highAccuracy && l.provider.HasGeolocation() {
		l.state = AwaitingPermission
		l.provider.CurrentPosition(PositionOptions{
			HighAccuracy: true,
			TimeoutMs:    l.cfg.PositionTimeoutMs,
			MaximumAgeMs: l.cfg.PositionMaxAgeMs,
		}, l.onPosition)
		return
	}
	l.fallback()
}

func (l *Locator) onPosition(c Coordinates, err error) {
	if l.closed || l.state != AwaitingPermission {
		return
	}
	if err != nil {
		l.log.Debug().Err(err).Msg("position unavailable")
		l.fallback()
		return
	}
	l.state = AwaitingHighAccuracy
	l.provider.Fetch(ReverseGeocodeURL(l.cfg.ReverseGeocodeURL, c), l.onReverse)
}

func (l *Locator) onReverse(body []byte, err error) {
	if l.closed || l.state != AwaitingHighAccuracy {
		return
	}
	if err == nil {
		var loc Location
		if loc, err = ParseReverseGeocode(body); err == nil {
			l.resolve(loc)
			return
		}
	}
	l.log.Debug().Err(err).Msg("reverse geocode failed")
	l.fallback()
}

func (l *Locator) fallback() {
	l.state = AwaitingIPFallback
	l.provider.Fetch(l.cfg.IPLookupURL, l.onIP)
}

func (l *Locator) onIP(body []byte, err error) {
	if l.closed || l.state != AwaitingIPFallback {
		return
	}
	if err == nil {
		var loc Location
		if loc, err = ParseIPLookup(body); err == nil {
			l.resolve(loc)
			return
		}
	}
	l.log.Debug().Err(err).Msg("ip lookup failed")
	l.state = Failed
	l.err = fmt.Errorf("%w: %v", ErrNoLocation, err)
	if l.OnDone != nil {
		l.OnDone(Location{}, l.err)
	}
}

func (l *Locator) resolve(loc Location) {
	l.state = Resolved
	l.loc = loc
	l.log.Debug().Bool("known", loc.Known()).Msg("location resolved")
	if l.OnDone != nil {
		l.OnDone(loc, nil)
	}
}

// State reports the current state.
func (l *Locator) State() State { return l.state }

// Location is the resolved location, zero until Resolved.
func (l *Locator) Location() Location { return l.loc }

// Err is the failure once Failed.
func (l *Locator) Err() error { return l.err }

// Settled reports whether the lookup finished either way.
func (l *Locator) Settled() bool { return l.state == Resolved || l.state == Failed }

// Close drops any callbacks still in flight.
func (l *Locator) Close() { l.closed = true }
