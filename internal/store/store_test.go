package store

import (
	"testing"
	"time"

	"github.com/dlamsal/airwave/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUserStore(t *testing.T) {
	Convey("UserStore", t, func() {
		dir := t.TempDir()

		Convey("Round-trips favorites across a reopen", func() {
			s, err := NewUserStore(dir)
			So(err, ShouldBeNil)

			added := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			entries := map[string]domain.FavoriteEntry{
				"a": {
					Station:   domain.Station{ID: "a", Name: "Radio Kantipur"},
					AddedAt:   added,
					PlayCount: 3,
				},
			}
			So(s.SaveFavorites(entries), ShouldBeNil)
			So(s.Close(), ShouldBeNil)

			reopened, err := NewUserStore(dir)
			So(err, ShouldBeNil)
			defer reopened.Close()

			loaded, ok := reopened.GetFavorites()
			So(ok, ShouldBeTrue)
			So(len(loaded), ShouldEqual, 1)
			So(loaded["a"].Station.Name, ShouldEqual, "Radio Kantipur")
			So(loaded["a"].PlayCount, ShouldEqual, 3)
			So(loaded["a"].AddedAt.Equal(added), ShouldBeTrue)
		})

		Convey("Round-trips the recently played list", func() {
			s, err := NewUserStore(dir)
			So(err, ShouldBeNil)
			defer s.Close()

			stations := []domain.Station{{ID: "a"}, {ID: "b"}}
			So(s.SaveRecent(stations), ShouldBeNil)

			loaded, ok := s.GetRecent()
			So(ok, ShouldBeTrue)
			So(loaded, ShouldResemble, stations)
		})

		Convey("Round-trips settings", func() {
			s, err := NewUserStore(dir)
			So(err, ShouldBeNil)
			defer s.Close()

			So(s.SaveSetting("theme", "ocean"), ShouldBeNil)
			value, ok := s.GetSetting("theme")
			So(ok, ShouldBeTrue)
			So(value, ShouldEqual, "ocean")

			_, ok = s.GetSetting("missing")
			So(ok, ShouldBeFalse)
		})

		Convey("Memory-only mode works without a data directory", func() {
			s, err := NewUserStore("")
			So(err, ShouldBeNil)

			So(s.SaveSetting("theme", "forest"), ShouldBeNil)
			value, ok := s.GetSetting("theme")
			So(ok, ShouldBeTrue)
			So(value, ShouldEqual, "forest")
			So(s.Close(), ShouldBeNil)
		})
	})
}

func TestFavoritesMigration(t *testing.T) {
	Convey("Legacy favorites payloads", t, func() {
		dir := t.TempDir()

		Convey("A bare id array upgrades to the keyed envelope", func() {
			s, err := NewUserStore(dir)
			So(err, ShouldBeNil)

			// Write the pre-versioned shape directly.
			So(s.set(bucketFavorites, "entries", []string{"a", "b"}), ShouldBeNil)

			loaded, ok := s.GetFavorites()
			So(ok, ShouldBeTrue)
			So(len(loaded), ShouldEqual, 2)
			So(loaded["a"].Station.ID, ShouldEqual, "a")
			So(loaded["a"].PlayCount, ShouldEqual, 0)
			So(loaded["a"].AddedAt.IsZero(), ShouldBeFalse)
			So(s.Close(), ShouldBeNil)

			Convey("And the upgrade is persisted", func() {
				reopened, err := NewUserStore(dir)
				So(err, ShouldBeNil)
				defer reopened.Close()

				again, ok := reopened.GetFavorites()
				So(ok, ShouldBeTrue)
				So(len(again), ShouldEqual, 2)
				So(again["b"].Station.ID, ShouldEqual, "b")
			})
		})

		Convey("Unreadable payloads report absence instead of failing", func() {
			s, err := NewUserStore(dir)
			So(err, ShouldBeNil)
			defer s.Close()

			So(s.set(bucketFavorites, "entries", "not a favorites shape"), ShouldBeNil)

			_, ok := s.GetFavorites()
			So(ok, ShouldBeFalse)
		})
	})
}
