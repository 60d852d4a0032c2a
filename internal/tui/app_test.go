package tui

import (
	"testing"

	"github.com/dlamsal/airwave/internal/domain"
	"github.com/dlamsal/airwave/internal/filter"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeepSearchRepage(t *testing.T) {
	Convey("Deep search results ignore the committed location predicates", t, func() {
		// The committed criteria carry the preferred-country seed.
		m := Model{
			pager: filter.NewPager(domain.FilterState{
				Country: "Nepal",
				SortBy:  domain.SortByName,
			}),
			searchResults: []domain.Station{
				{ID: "de", Name: "Deutschlandfunk", Country: "Germany"},
				{ID: "fr", Name: "FIP", Country: "France"},
			},
		}

		Convey("While deep search is active every result is visible", func() {
			m.view = viewDeepSearch
			m.repage()
			So(len(m.visible), ShouldEqual, 2)
			So(m.pager.Criteria().Country, ShouldEqual, "Nepal")
		})

		Convey("Back in browse the committed country filter applies again", func() {
			m.view = viewBrowse
			m.allStations = m.searchResults
			m.searchResults = nil
			m.repage()
			So(m.visible, ShouldBeEmpty)
		})
	})
}
