// Package source wires the station catalog backends. Each backend lives in
// its own subpackage and satisfies domain.StationSource; optional
// capabilities (native search, country lists) are discovered by type
// assertion at the aggregation layer.
package source

import (
	"log/slog"

	"github.com/dlamsal/airwave/internal/config"
	"github.com/dlamsal/airwave/internal/domain"
	"github.com/dlamsal/airwave/internal/source/radiobrowser"
	"github.com/dlamsal/airwave/internal/source/yoradio"
)

// Source ids
const (
	SourceYoRadio      = "yoradio"
	SourceRadioBrowser = "radio-browser"
)

// Available returns every registered catalog, enabled or not, for the
// settings surface.
func Available() []domain.SourceInfo {
	return []domain.SourceInfo{
		{
			ID:          SourceYoRadio,
			Name:        "Standard Source",
			URL:         yoradio.DefaultBaseURL,
			IsDefault:   true,
			Description: "Primary collection of radio stations",
		},
		{
			ID:          SourceRadioBrowser,
			Name:        "Radio Browser (Beta)",
			URL:         radiobrowser.DefaultBaseURL,
			IsDefault:   false,
			Description: "Extended collection from Radio Browser API",
		},
	}
}

// NewSources builds clients for every registered catalog. The enabled set
// is applied by the catalog service, not here: disabling a source must
// not tear down its client.
func NewSources(cfg *config.Config, logger *slog.Logger) []domain.StationSource {
	if logger == nil {
		logger = slog.Default()
	}

	return []domain.StationSource{
		yoradio.NewClient(cfg.Sources.YoRadioURL, logger),
		radiobrowser.NewClient(cfg.Sources.RadioBrowserURL, cfg.Preferences.Country, logger),
	}
}
