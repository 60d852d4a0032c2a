package filter

import (
	"testing"

	"github.com/dlamsal/airwave/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

func mhz(v float64) *float64 { return &v }

func testStations() []domain.Station {
	return []domain.Station{
		{ID: "a", Name: "Radio Kantipur", Frequency: mhz(96.1), Province: 3, Tags: []string{"news", "talk"}},
		{ID: "b", Name: "Ujyaalo 90 Network", Frequency: mhz(90.0), Province: 3, Tags: []string{"news"}},
		{ID: "c", Name: "Hits FM", Frequency: mhz(91.2), Province: 1, Tags: []string{"music"}},
		{ID: "d", Name: "BBC World Service", Country: "United Kingdom", State: "London", Votes: 900, Bitrate: 128},
		{ID: "e", Name: "Jazz24", Country: "United States", Votes: 500, Bitrate: 256, Tags: []string{"jazz"}},
	}
}

func TestMatches(t *testing.T) {
	Convey("Matches", t, func() {
		stations := testStations()

		Convey("Search is a case-insensitive substring over name, tags, state and country", func() {
			So(Matches(stations[0], domain.FilterState{Search: "kantipur"}), ShouldBeTrue)
			So(Matches(stations[0], domain.FilterState{Search: "TALK"}), ShouldBeTrue)
			So(Matches(stations[3], domain.FilterState{Search: "london"}), ShouldBeTrue)
			So(Matches(stations[4], domain.FilterState{Search: "united s"}), ShouldBeTrue)
			So(Matches(stations[2], domain.FilterState{Search: "jazz"}), ShouldBeFalse)
		})

		Convey("Province 0 means unset", func() {
			So(Matches(stations[0], domain.FilterState{Province: 0}), ShouldBeTrue)
			So(Matches(stations[0], domain.FilterState{Province: 3}), ShouldBeTrue)
			So(Matches(stations[2], domain.FilterState{Province: 3}), ShouldBeFalse)
		})

		Convey("Stations without a country match the Nepal filter", func() {
			So(Matches(stations[0], domain.FilterState{Country: "Nepal"}), ShouldBeTrue)
			So(Matches(stations[0], domain.FilterState{Country: "United Kingdom"}), ShouldBeFalse)
			So(Matches(stations[3], domain.FilterState{Country: "United Kingdom"}), ShouldBeTrue)
			So(Matches(stations[3], domain.FilterState{Country: "Nepal"}), ShouldBeFalse)
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Apply", t, func() {
		stations := testStations()

		Convey("Returns a subset without duplicates and leaves the input alone", func() {
			before := stations[0].ID
			out := Apply(stations, domain.FilterState{Search: "news"})

			So(len(out), ShouldEqual, 2)
			seen := make(map[string]bool)
			for _, st := range out {
				So(seen[st.ID], ShouldBeFalse)
				seen[st.ID] = true
			}
			So(stations[0].ID, ShouldEqual, before)
		})

		Convey("Is idempotent for the same input and criteria", func() {
			criteria := domain.FilterState{Country: "Nepal", SortBy: domain.SortByFrequency}
			first := Apply(stations, criteria)
			second := Apply(stations, criteria)
			So(second, ShouldResemble, first)
		})

		Convey("Sorts by name case-insensitively by default", func() {
			out := Apply(stations, domain.FilterState{})
			So(out[0].Name, ShouldEqual, "BBC World Service")
			So(out[1].Name, ShouldEqual, "Hits FM")
			So(out[len(out)-1].Name, ShouldEqual, "Ujyaalo 90 Network")
		})

		Convey("Sorts by frequency ascending with missing values first", func() {
			out := Apply(stations, domain.FilterState{SortBy: domain.SortByFrequency})
			So(out[0].FrequencyMHz(), ShouldEqual, 0)
			So(out[len(out)-1].FrequencyMHz(), ShouldEqual, 96.1)
		})

		Convey("Sorts by votes and bitrate descending", func() {
			byVotes := Apply(stations, domain.FilterState{SortBy: domain.SortByVotes})
			So(byVotes[0].ID, ShouldEqual, "d")

			byBitrate := Apply(stations, domain.FilterState{SortBy: domain.SortByBitrate})
			So(byBitrate[0].ID, ShouldEqual, "e")
		})
	})
}

func TestFacets(t *testing.T) {
	Convey("Facets derive from the full set", t, func() {
		stations := testStations()

		Convey("Provinces are distinct, non-zero, ascending", func() {
			So(Provinces(stations), ShouldResemble, []int{1, 3})
		})

		Convey("Countries are distinct, non-empty, ascending", func() {
			So(Countries(stations), ShouldResemble, []string{"United Kingdom", "United States"})
		})
	})
}

func TestPager(t *testing.T) {
	Convey("Pager", t, func() {
		stations := make([]domain.Station, 30)
		for i := range stations {
			stations[i] = domain.Station{ID: string(rune('a' + i)), Name: string(rune('a' + i))}
		}

		pager := NewPager(domain.FilterState{})

		Convey("Shows one page initially and reports more", func() {
			visible, hasMore := pager.Page(stations)
			So(len(visible), ShouldEqual, PageSize)
			So(hasMore, ShouldBeTrue)
		})

		Convey("LoadMore raises the watermark one page at a time", func() {
			pager.LoadMore()
			visible, hasMore := pager.Page(stations)
			So(len(visible), ShouldEqual, 2*PageSize)
			So(hasMore, ShouldBeTrue)

			pager.LoadMore()
			visible, hasMore = pager.Page(stations)
			So(len(visible), ShouldEqual, 30)
			So(hasMore, ShouldBeFalse)
		})

		Convey("Changing criteria resets the watermark", func() {
			pager.LoadMore()
			pager.SetCriteria(domain.FilterState{SortBy: domain.SortByName})
			So(pager.VisibleCount(), ShouldEqual, PageSize)
		})

		Convey("Setting identical criteria keeps the watermark", func() {
			pager.LoadMore()
			pager.SetCriteria(domain.FilterState{})
			So(pager.VisibleCount(), ShouldEqual, 2*PageSize)
		})

		Convey("PageWith overrides the criteria without touching the pager", func() {
			scoped := NewPager(domain.FilterState{Country: "Nepal"})
			abroad := []domain.Station{
				{ID: "x", Name: "X", Country: "Germany"},
				{ID: "y", Name: "Y", Country: "France"},
			}

			visible, _ := scoped.Page(abroad)
			So(visible, ShouldBeEmpty)

			visible, hasMore := scoped.PageWith(abroad, domain.FilterState{})
			So(len(visible), ShouldEqual, 2)
			So(hasMore, ShouldBeFalse)
			So(scoped.Criteria().Country, ShouldEqual, "Nepal")
		})

		Convey("hasMore is false exactly when everything filtered in is visible", func() {
			visible, hasMore := pager.Page(stations[:PageSize])
			So(len(visible), ShouldEqual, PageSize)
			So(hasMore, ShouldBeFalse)
		})
	})
}
