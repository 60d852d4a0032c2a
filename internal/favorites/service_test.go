package favorites

import (
	"fmt"
	"testing"
	"time"

	"github.com/dlamsal/airwave/internal/domain"
	"github.com/dlamsal/airwave/internal/log"
	"github.com/dlamsal/airwave/internal/store"
	. "github.com/smartystreets/goconvey/convey"
)

func memStore() domain.Store {
	s, _ := store.NewUserStore("")
	return s
}

// nilFavoritesStore reports a favorites payload as present but nil, the
// shape a v1 envelope with a null stations field loads as.
type nilFavoritesStore struct{}

func (nilFavoritesStore) GetFavorites() (map[string]domain.FavoriteEntry, bool) { return nil, true }
func (nilFavoritesStore) SaveFavorites(map[string]domain.FavoriteEntry) error { return nil }
func (nilFavoritesStore) GetRecent() ([]domain.Station, bool) { return nil, false }
func (nilFavoritesStore) SaveRecent([]domain.Station) error { return nil }
func (nilFavoritesStore) GetSetting(string) (string, bool) { return "", false }
func (nilFavoritesStore) SaveSetting(string, string) error { return nil }
func (nilFavoritesStore) Close() error { return nil }

func station(id string) domain.Station {
	return domain.Station{ID: id, Name: "Station " + id}
}

func TestFavorites(t *testing.T) {
	Convey("Favorites", t, func() {
		backing := memStore()
		svc := NewService(backing, log.NullLogger())

		Convey("Add, membership, and removal", func() {
			svc.Add(station("a"))
			So(svc.IsFavorite("a"), ShouldBeTrue)
			So(svc.Count(), ShouldEqual, 1)

			entry, ok := svc.Entry("a")
			So(ok, ShouldBeTrue)
			So(entry.PlayCount, ShouldEqual, 0)
			So(entry.AddedAt.IsZero(), ShouldBeFalse)
			So(entry.LastPlayedAt, ShouldBeNil)

			svc.Remove("a")
			So(svc.IsFavorite("a"), ShouldBeFalse)

			Convey("Removing an unknown id is a no-op", func() {
				svc.Remove("never-added")
				So(svc.Count(), ShouldEqual, 0)
			})
		})

		Convey("A store reporting a nil favorites map still accepts adds", func() {
			degraded := NewService(nilFavoritesStore{}, log.NullLogger())
			So(func() { degraded.Add(station("a")) }, ShouldNotPanic)
			So(degraded.IsFavorite("a"), ShouldBeTrue)
		})

		Convey("Toggle flips membership and reports the new state", func() {
			So(svc.Toggle(station("a")), ShouldBeTrue)
			So(svc.Toggle(station("a")), ShouldBeFalse)
			So(svc.IsFavorite("a"), ShouldBeFalse)
		})

		Convey("State survives a reload from the same store", func() {
			svc.Add(station("a"))
			svc.RecordPlay("a")

			reloaded := NewService(backing, log.NullLogger())
			So(reloaded.IsFavorite("a"), ShouldBeTrue)
			entry, _ := reloaded.Entry("a")
			So(entry.PlayCount, ShouldEqual, 1)
		})

		Convey("RecordPlay", func() {
			svc.Add(station("a"))

			Convey("Bumps the count and stamps the time", func() {
				svc.RecordPlay("a")
				svc.RecordPlay("a")

				entry, _ := svc.Entry("a")
				So(entry.PlayCount, ShouldEqual, 2)
				So(entry.LastPlayedAt, ShouldNotBeNil)
			})

			Convey("Ignores stations that are not favorited", func() {
				svc.RecordPlay("b")
				So(svc.IsFavorite("b"), ShouldBeFalse)
			})

			Convey("Re-adding resets the statistics", func() {
				svc.RecordPlay("a")
				svc.Add(station("a"))
				entry, _ := svc.Entry("a")
				So(entry.PlayCount, ShouldEqual, 0)
			})
		})

		Convey("ListFavorites preserves the candidates' order", func() {
			svc.Add(station("b"))
			svc.Add(station("a"))

			candidates := []domain.Station{station("a"), station("x"), station("b")}
			out := svc.ListFavorites(candidates)
			So(len(out), ShouldEqual, 2)
			So(out[0].ID, ShouldEqual, "a")
			So(out[1].ID, ShouldEqual, "b")
		})

		Convey("Rankings", func() {
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			tick := 0
			svc.now = func() time.Time {
				tick++
				return base.Add(time.Duration(tick) * time.Minute)
			}

			for i := 0; i < 7; i++ {
				svc.Add(station(fmt.Sprintf("s%d", i)))
			}
			for i := 0; i < 7; i++ {
				for j := 0; j <= i; j++ {
					svc.RecordPlay(fmt.Sprintf("s%d", i))
				}
			}

			Convey("MostPlayed is play count descending, capped", func() {
				ids := svc.MostPlayed(3)
				So(ids, ShouldResemble, []string{"s6", "s5", "s4"})
			})

			Convey("RecentlyAdded is newest first with the default cap of 5", func() {
				ids := svc.RecentlyAdded(0)
				So(len(ids), ShouldEqual, 5)
				So(ids[0], ShouldEqual, "s6")
				So(ids[4], ShouldEqual, "s2")
			})
		})
	})
}

func TestRecentlyPlayed(t *testing.T) {
	Convey("Recently played", t, func() {
		svc := NewService(memStore(), log.NullLogger())

		Convey("Newest first, deduplicated by id", func() {
			svc.RecordRecentPlay(station("a"))
			svc.RecordRecentPlay(station("b"))
			svc.RecordRecentPlay(station("a"))

			recent := svc.ListRecent(10)
			So(len(recent), ShouldEqual, 2)
			So(recent[0].ID, ShouldEqual, "a")
			So(recent[1].ID, ShouldEqual, "b")
		})

		Convey("Caps at twenty, evicting the oldest", func() {
			for i := 0; i < 25; i++ {
				svc.RecordRecentPlay(station(fmt.Sprintf("s%d", i)))
			}

			recent := svc.ListRecent(25)
			So(len(recent), ShouldEqual, 20)
			So(recent[0].ID, ShouldEqual, "s24")
			So(recent[19].ID, ShouldEqual, "s5")
		})

		Convey("ListRecent defaults to ten entries", func() {
			for i := 0; i < 15; i++ {
				svc.RecordRecentPlay(station(fmt.Sprintf("s%d", i)))
			}
			So(len(svc.ListRecent(0)), ShouldEqual, 10)
		})

		Convey("ClearRecent empties the list", func() {
			svc.RecordRecentPlay(station("a"))
			svc.ClearRecent()
			So(svc.ListRecent(10), ShouldBeEmpty)
		})
	})
}
