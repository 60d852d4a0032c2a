package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultConfig(t *testing.T) {
	Convey("DefaultConfig", t, func() {
		cfg := DefaultConfig()

		Convey("Enables only the default catalog", func() {
			So(cfg.Sources.Enabled, ShouldResemble, []string{"yoradio"})
		})

		Convey("Starts at a comfortable volume", func() {
			So(cfg.Player.Volume, ShouldEqual, 0.7)
		})

		Convey("Seeds the country filter", func() {
			So(cfg.Preferences.Country, ShouldEqual, "Nepal")
			So(cfg.Preferences.OnboardingCompleted, ShouldBeFalse)
		})
	})
}

func TestSourceToggling(t *testing.T) {
	Convey("Source enable set", t, func() {
		cfg := DefaultConfig()

		Convey("IsSourceEnabled reflects membership", func() {
			So(cfg.IsSourceEnabled("yoradio"), ShouldBeTrue)
			So(cfg.IsSourceEnabled("radio-browser"), ShouldBeFalse)
		})

		Convey("ToggleSource adds and removes", func() {
			cfg.ToggleSource("radio-browser")
			So(cfg.IsSourceEnabled("radio-browser"), ShouldBeTrue)

			cfg.ToggleSource("radio-browser")
			So(cfg.IsSourceEnabled("radio-browser"), ShouldBeFalse)

			cfg.ToggleSource("yoradio")
			So(cfg.Sources.Enabled, ShouldBeEmpty)
		})
	})
}
