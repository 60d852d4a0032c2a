package radiobrowser

// stationDTO mirrors the radio-browser.info station JSON.
type stationDTO struct {
	ChangeUUID    string   `json:"changeuuid"`
	StationUUID   string   `json:"stationuuid"`
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	URLResolved   string   `json:"url_resolved"`
	Homepage      string   `json:"homepage"`
	Favicon       string   `json:"favicon"`
	Tags          string   `json:"tags"` // comma-separated
	Country       string   `json:"country"`
	CountryCode   string   `json:"countrycode"`
	State         string   `json:"state"`
	Language      string   `json:"language"`
	LanguageCodes string   `json:"languagecodes"`
	Votes         int      `json:"votes"`
	Codec         string   `json:"codec"`
	Bitrate       int      `json:"bitrate"`
	LastCheckOK   int      `json:"lastcheckok"`
	LastCheckTime string   `json:"lastchecktime"`
	ClickCount    int      `json:"clickcount"`
	ClickTrend    int      `json:"clicktrend"`
	SSLError      int      `json:"ssl_error"`
	GeoLat        *float64 `json:"geo_lat"`
	GeoLong       *float64 `json:"geo_long"`
}

// countryDTO mirrors the radio-browser.info country JSON.
type countryDTO struct {
	Name         string `json:"name"`
	ISO3166_1    string `json:"iso_3166_1"`
	StationCount int    `json:"stationcount"`
}
