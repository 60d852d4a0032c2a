package domain

import "context"

// StationSource is the required capability of a station catalog adapter:
// fetch the full set of stations the source currently knows to be playable.
// Implementations translate their source-specific schema into Station and
// drop entries their catalog reports as dead.
type StationSource interface {
	// ID returns the source identifier used in the enabled-sources set.
	ID() string

	// FetchStations returns all playable stations from this catalog.
	FetchStations(ctx context.Context) ([]Station, error)
}

// StationSearcher is an optional source capability: a native server-side
// search endpoint. Sources without it are searched by local filtering over
// FetchStations results.
type StationSearcher interface {
	SearchStations(ctx context.Context, query string) ([]Station, error)
}

// CountryLister is an optional source capability: the list of countries
// the catalog has stations for.
type CountryLister interface {
	FetchCountries(ctx context.Context) ([]string, error)
}

// Store handles persisted user state: favorites, recently played, and
// settings. It is the only persisted domain state in the system.
type Store interface {
	// === Favorites ===
	GetFavorites() (map[string]FavoriteEntry, bool)
	SaveFavorites(entries map[string]FavoriteEntry) error

	// === Recently played ===
	GetRecent() ([]Station, bool)
	SaveRecent(stations []Station) error

	// === Settings ===
	GetSetting(key string) (string, bool)
	SaveSetting(key, value string) error

	Close() error
}
