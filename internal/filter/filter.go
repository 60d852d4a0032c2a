// Package filter is the pure station filtering, sorting, and pagination
// engine. Apply has no hidden state: the same input and criteria always
// produce the same output.
package filter

import (
	"sort"
	"strings"

	"github.com/dlamsal/airwave/internal/domain"
)

// defaultCountryAlias is the country a station with no country field is
// treated as belonging to. The default catalog predates the country field
// and is Nepal-only, so its stations must keep matching a "Nepal" country
// filter. This is a convention of that one catalog, not a general rule.
const defaultCountryAlias = "Nepal"

// Apply filters and sorts stations by the given criteria. The result is a
// new slice; the input is never reordered.
func Apply(stations []domain.Station, criteria domain.FilterState) []domain.Station {
	filtered := make([]domain.Station, 0, len(stations))
	for _, st := range stations {
		if Matches(st, criteria) {
			filtered = append(filtered, st)
		}
	}
	sortStations(filtered, criteria.SortBy)
	return filtered
}

// Matches reports whether a single station passes all active predicates.
func Matches(st domain.Station, criteria domain.FilterState) bool {
	return matchesSearch(st, criteria.Search) &&
		matchesProvince(st, criteria.Province) &&
		matchesCountry(st, criteria.Country)
}

func matchesSearch(st domain.Station, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)

	if strings.Contains(strings.ToLower(st.Name), needle) {
		return true
	}
	for _, tag := range st.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	if st.State != "" && strings.Contains(strings.ToLower(st.State), needle) {
		return true
	}
	if st.Country != "" && strings.Contains(strings.ToLower(st.Country), needle) {
		return true
	}
	return false
}

func matchesProvince(st domain.Station, province int) bool {
	if province == 0 {
		return true
	}
	return st.Province == province
}

func matchesCountry(st domain.Station, country string) bool {
	if country == "" {
		return true
	}
	if st.Country == "" {
		// Default-catalog stations carry no country field.
		return country == defaultCountryAlias
	}
	return st.Country == country
}

// sortStations orders stations in place, stably, by the active comparator.
func sortStations(stations []domain.Station, sortBy domain.SortOption) {
	switch sortBy {
	case domain.SortByFrequency:
		sort.SliceStable(stations, func(i, j int) bool {
			return stations[i].FrequencyMHz() < stations[j].FrequencyMHz()
		})
	case domain.SortByVotes:
		sort.SliceStable(stations, func(i, j int) bool {
			return stations[i].Votes > stations[j].Votes
		})
	case domain.SortByBitrate:
		sort.SliceStable(stations, func(i, j int) bool {
			return stations[i].Bitrate > stations[j].Bitrate
		})
	default: // SortByName
		sort.SliceStable(stations, func(i, j int) bool {
			a, b := strings.ToLower(stations[i].Name), strings.ToLower(stations[j].Name)
			if a != b {
				return a < b
			}
			return stations[i].Name < stations[j].Name
		})
	}
}

// Provinces returns the distinct non-zero province codes observed in the
// full station set, ascending. Facets always derive from the unfiltered set.
func Provinces(stations []domain.Station) []int {
	seen := make(map[int]bool)
	var provinces []int
	for _, st := range stations {
		if st.Province != 0 && !seen[st.Province] {
			seen[st.Province] = true
			provinces = append(provinces, st.Province)
		}
	}
	sort.Ints(provinces)
	return provinces
}

// Countries returns the distinct non-empty countries observed in the full
// station set, ascending.
func Countries(stations []domain.Station) []string {
	seen := make(map[string]bool)
	var countries []string
	for _, st := range stations {
		if st.Country != "" && !seen[st.Country] {
			seen[st.Country] = true
			countries = append(countries, st.Country)
		}
	}
	sort.Strings(countries)
	return countries
}
