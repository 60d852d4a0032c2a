package domain

import (
	"fmt"
	"strings"
	"time"
)

// Station represents a playable radio stream with its catalog metadata.
// IDs are stable within the source that produced the station; sources are
// expected to use disjoint identifier spaces (UUIDs vs. catalog slugs).
type Station struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StreamURL string   `json:"streamUrl"`
	Frequency *float64 `json:"frequency"` // MHz; nil for internet-only streams
	Address   string   `json:"address"`
	Province  int      `json:"province,omitempty"` // numeric region code (default catalog only)
	Favicon   string   `json:"favicon,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Language  string   `json:"language,omitempty"`
	Country   string   `json:"country,omitempty"`
	State     string   `json:"state,omitempty"`
	Codec     string   `json:"codec,omitempty"`
	Bitrate   int      `json:"bitrate,omitempty"` // kbps
	Votes     int      `json:"votes,omitempty"`
	Homepage  string   `json:"homepage,omitempty"`

	LastChecked string `json:"lastChecked,omitempty"`
	IsOnline    bool   `json:"isOnline,omitempty"`
}

// FrequencyMHz returns the broadcast frequency, or 0 for internet-only stations.
func (s Station) FrequencyMHz() float64 {
	if s.Frequency == nil {
		return 0
	}
	return *s.Frequency
}

// DisplayFrequency returns the frequency formatted for display ("98.1 MHz"),
// or empty for internet-only stations.
func (s Station) DisplayFrequency() string {
	if s.Frequency == nil {
		return ""
	}
	return fmt.Sprintf("%.1f MHz", *s.Frequency)
}

// Location returns the best available location string for display.
func (s Station) Location() string {
	switch {
	case s.State != "" && s.Country != "":
		return s.State + ", " + s.Country
	case s.Country != "":
		return s.Country
	case s.State != "":
		return s.State
	default:
		return s.Address
	}
}

// HasTag reports whether the station carries the given tag, case-insensitively.
func (s Station) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// FavoriteEntry is a favorited station snapshot with its play statistics.
// Keyed by station ID in the favorites store; at most one entry per ID.
type FavoriteEntry struct {
	Station      Station    `json:"station"`
	AddedAt      time.Time  `json:"addedAt"`
	LastPlayedAt *time.Time `json:"lastPlayedAt,omitempty"`
	PlayCount    int        `json:"playCount"`
}

// SourceInfo describes a registered station catalog.
type SourceInfo struct {
	ID          string
	Name        string
	URL         string
	IsDefault   bool // enabled on first run
	Description string
}

// SortOption selects the comparator applied to filtered stations.
type SortOption string

const (
	SortByName      SortOption = "name"      // lexicographic ascending
	SortByFrequency SortOption = "frequency" // numeric ascending, missing as 0
	SortByVotes     SortOption = "votes"     // numeric descending, missing as 0
	SortByBitrate   SortOption = "bitrate"   // numeric descending, missing as 0
)

// FilterState holds the criteria the filter engine applies to the full
// station set. Zero values mean "not filtering on this axis".
type FilterState struct {
	Search   string     // case-insensitive substring over name/tags/state/country
	Province int        // exact match; 0 = unset
	Country  string     // exact match; "" = unset
	SortBy   SortOption
}

// Equal reports whether two criteria are identical. The pager uses this to
// detect criteria changes and reset its watermark.
func (f FilterState) Equal(other FilterState) bool {
	return f == other
}
