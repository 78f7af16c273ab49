package types_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchside/internal/domain/types"
)

func TestAgeBandFor(t *testing.T) {
	Convey("Given athlete ages", t, func() {
		cases := []struct {
			age  int
			band types.AgeBand
			ok   bool
		}{
			{11, types.Elite, false},
			{0, types.Elite, false},
			{12, types.U14, true},
			{14, types.U14, true},
			{15, types.U16, true},
			{16, types.U16, true},
			{17, types.U18, true},
			{18, types.U18, true},
			{19, types.Elite, true},
			{34, types.Elite, true},
		}

		Convey("Then each age maps to its inclusive band", func() {
			for _, c := range cases {
				band, ok := types.AgeBandFor(c.age)
				So(band, ShouldEqual, c.band)
				So(ok, ShouldEqual, c.ok)
			}
		})
	})
}

func TestTier(t *testing.T) {
	Convey("Given the tier scale", t, func() {
		Convey("Then scores follow 5/4/3/2", func() {
			So(types.Excellent.Score(), ShouldEqual, 5.0)
			So(types.Good.Score(), ShouldEqual, 4.0)
			So(types.Average.Score(), ShouldEqual, 3.0)
			So(types.Poor.Score(), ShouldEqual, 2.0)
			So(types.Tier(0).Score(), ShouldEqual, 0.0)
		})

		Convey("Then tiers order worst to best", func() {
			So(types.Poor < types.Average, ShouldBeTrue)
			So(types.Average < types.Good, ShouldBeTrue)
			So(types.Good < types.Excellent, ShouldBeTrue)
			So(types.Tier(0).Valid(), ShouldBeFalse)
		})

		Convey("Then names round-trip through text", func() {
			for _, tier := range types.Tiers {
				b, err := tier.MarshalText()
				So(err, ShouldBeNil)
				var back types.Tier
				So(back.UnmarshalText(b), ShouldBeNil)
				So(back, ShouldEqual, tier)
			}
			_, err := types.ParseTier("legendary")
			So(err, ShouldNotBeNil)
		})

		Convey("Then only poor and average are weak", func() {
			So(types.Poor.Weak(), ShouldBeTrue)
			So(types.Average.Weak(), ShouldBeTrue)
			So(types.Good.Weak(), ShouldBeFalse)
			So(types.Excellent.Weak(), ShouldBeFalse)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the metric registry", t, func() {
		all := types.Metrics()

		Convey("Then it holds fifteen metrics across four categories", func() {
			So(len(all), ShouldEqual, 15)
			So(len(types.MetricsIn(types.Physical)), ShouldEqual, 5)
			So(len(types.MetricsIn(types.Technical)), ShouldEqual, 5)
			So(len(types.MetricsIn(types.Tactical)), ShouldEqual, 3)
			So(len(types.MetricsIn(types.Psychological)), ShouldEqual, 2)
		})

		Convey("Then sprint and body fat are lower-is-better", func() {
			for _, info := range all {
				lower := info.Metric == types.Sprint30m || info.Metric == types.BodyFat
				So(info.Direction == types.LowerIsBetter, ShouldEqual, lower)
			}
		})

		Convey("Then order follows registration", func() {
			So(types.Order(types.Sprint30m), ShouldEqual, 0)
			So(types.Order(types.MentalToughness), ShouldEqual, 14)
			So(types.Order("cartwheels"), ShouldEqual, -1)
			So(types.Metric("cartwheels").Known(), ShouldBeFalse)
		})

		Convey("Then Metrics returns a copy", func() {
			all[0].Unit = "furlongs"
			info, ok := types.Lookup(types.Sprint30m)
			So(ok, ShouldBeTrue)
			So(info.Unit, ShouldEqual, "seconds")
		})
	})
}

func TestDirectionAndLabels(t *testing.T) {
	Convey("Given directions and categories", t, func() {
		So(types.LowerIsBetter.Better(4.1, 4.3), ShouldBeTrue)
		So(types.HigherIsBetter.Better(4.1, 4.3), ShouldBeFalse)
		So(types.Technical.Label(), ShouldEqual, "Technical")
		b, ok := types.ParseAgeBand("15-16")
		So(ok, ShouldBeTrue)
		So(b, ShouldEqual, types.U16)
		_, ok = types.ParseAgeBand("u21")
		So(ok, ShouldBeFalse)
	})
}
