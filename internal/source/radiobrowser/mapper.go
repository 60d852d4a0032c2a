package radiobrowser

import (
	"strings"

	"github.com/dlamsal/airwave/internal/domain"
)

// toStation converts a radio-browser record into the canonical station
// shape. Radio-browser stations are internet-only, so Frequency stays nil.
func toStation(dto stationDTO) domain.Station {
	streamURL := dto.URLResolved
	if streamURL == "" {
		streamURL = dto.URL
	}

	address := dto.State
	if address == "" {
		address = dto.Country
	}
	if address == "" {
		address = "Unknown Location"
	}

	return domain.Station{
		ID:          dto.StationUUID,
		Name:        dto.Name,
		StreamURL:   streamURL,
		Frequency:   nil,
		Address:     address,
		Favicon:     dto.Favicon,
		Tags:        splitTags(dto.Tags),
		Language:    dto.Language,
		Country:     dto.Country,
		State:       dto.State,
		Codec:       dto.Codec,
		Bitrate:     dto.Bitrate,
		Votes:       dto.Votes,
		Homepage:    dto.Homepage,
		LastChecked: dto.LastCheckTime,
		IsOnline:    dto.LastCheckOK == 1,
	}
}

// mapStations converts DTOs to stations, dropping entries the catalog's
// last liveness check flagged as dead.
func mapStations(dtos []stationDTO) []domain.Station {
	stations := make([]domain.Station, 0, len(dtos))
	for _, dto := range dtos {
		if dto.LastCheckOK != 1 {
			continue
		}
		stations = append(stations, toStation(dto))
	}
	return stations
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
