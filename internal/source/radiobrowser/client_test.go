package radiobrowser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dlamsal/airwave/internal/log"
	. "github.com/smartystreets/goconvey/convey"
)

const stationsJSON = `[
	{
		"stationuuid": "uuid-1",
		"name": "BBC World Service",
		"url": "http://example.com/bbc",
		"url_resolved": "http://cdn.example.com/bbc",
		"country": "United Kingdom",
		"state": "London",
		"tags": "news, talk ,",
		"codec": "MP3",
		"bitrate": 128,
		"votes": 900,
		"lastcheckok": 1
	},
	{
		"stationuuid": "uuid-2",
		"name": "Dead Air FM",
		"url": "http://example.com/dead",
		"lastcheckok": 0
	},
	{
		"stationuuid": "uuid-3",
		"name": "No Mirror Radio",
		"url": "http://example.com/direct",
		"country": "United Kingdom",
		"lastcheckok": 1
	}
]`

func TestFetchStations(t *testing.T) {
	Convey("FetchStations", t, func() {
		var gotPath, gotAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAgent = r.Header.Get("User-Agent")
			w.Write([]byte(stationsJSON))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "United Kingdom", log.NullLogger())
		stations, err := client.FetchStations(context.Background())
		So(err, ShouldBeNil)

		Convey("Hits the lowercased bycountry endpoint with our user agent", func() {
			So(gotPath, ShouldEqual, "/stations/bycountry/united kingdom")
			So(gotAgent, ShouldEqual, "Airwave/1.0")
		})

		Convey("Drops stations the liveness check flagged dead", func() {
			So(len(stations), ShouldEqual, 2)
			So(stations[0].ID, ShouldEqual, "uuid-1")
			So(stations[1].ID, ShouldEqual, "uuid-3")
		})

		Convey("Prefers the resolved URL, falling back to the raw one", func() {
			So(stations[0].StreamURL, ShouldEqual, "http://cdn.example.com/bbc")
			So(stations[1].StreamURL, ShouldEqual, "http://example.com/direct")
		})

		Convey("Maps the metadata into the canonical shape", func() {
			st := stations[0]
			So(st.Name, ShouldEqual, "BBC World Service")
			So(st.Country, ShouldEqual, "United Kingdom")
			So(st.Tags, ShouldResemble, []string{"news", "talk"})
			So(st.Bitrate, ShouldEqual, 128)
			So(st.Votes, ShouldEqual, 900)
			So(st.Frequency, ShouldBeNil)
			So(st.IsOnline, ShouldBeTrue)
		})
	})

	Convey("FetchStations surfaces HTTP errors", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "Nepal", log.NullLogger())
		_, err := client.FetchStations(context.Background())
		So(err, ShouldNotBeNil)
	})
}

func TestSearchStations(t *testing.T) {
	Convey("SearchStations queries the native search endpoint", t, func() {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("name")
			w.Write([]byte(stationsJSON))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "Nepal", log.NullLogger())
		stations, err := client.SearchStations(context.Background(), "bbc world")
		So(err, ShouldBeNil)
		So(gotQuery, ShouldEqual, "bbc world")
		So(len(stations), ShouldEqual, 2)
	})
}

func TestFetchCountries(t *testing.T) {
	Convey("FetchCountries keeps only named countries with stations", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"name": "Nepal", "stationcount": 94},
				{"name": "", "stationcount": 12},
				{"name": "Atlantis", "stationcount": 0}
			]`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "Nepal", log.NullLogger())
		countries, err := client.FetchCountries(context.Background())
		So(err, ShouldBeNil)
		So(countries, ShouldResemble, []string{"Nepal"})
	})
}

func TestSetCountry(t *testing.T) {
	Convey("SetCountry", t, func() {
		client := NewClient("", "", log.NullLogger())

		Convey("An empty initial country falls back to Nepal", func() {
			So(client.country, ShouldEqual, "Nepal")
		})

		Convey("Changes take effect, empty values are ignored", func() {
			client.SetCountry("Japan")
			So(client.country, ShouldEqual, "Japan")
			client.SetCountry("")
			So(client.country, ShouldEqual, "Japan")
		})
	})
}
