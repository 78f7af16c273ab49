package benchmark_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchside/internal/domain/benchmark"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/types"
)

func assessment(values map[types.Metric]float64) model.Assessment {
	a, err := model.NewAssessment(model.NewID(), "ath-1", 16, "winger", time.Now(), values)
	So(err, ShouldBeNil)
	return a
}

func TestCompare(t *testing.T) {
	Convey("Given a comparator over the default set", t, func() {
		c := benchmark.New()

		Convey("When sprint drops from 4.5s to 4.4s", func() {
			cmp := c.Compare(
				assessment(map[types.Metric]float64{types.Sprint30m: 4.4}),
				assessment(map[types.Metric]float64{types.Sprint30m: 4.5}),
			)

			Convey("Then it is an improvement", func() {
				So(len(cmp.Improvements), ShouldEqual, 1)
				ch := cmp.Improvements[0]
				So(ch.Metric, ShouldEqual, types.Sprint30m)
				So(ch.Delta, ShouldAlmostEqual, -0.1, 1e-9)
				So(ch.Percent, ShouldAlmostEqual, 2.2222, 1e-3)
				So(ch.Outcome, ShouldEqual, benchmark.Improvement)
			})
		})

		Convey("When sprint moves from 4.5s to 4.47s", func() {
			cmp := c.Compare(
				assessment(map[types.Metric]float64{types.Sprint30m: 4.47}),
				assessment(map[types.Metric]float64{types.Sprint30m: 4.5}),
			)

			Convey("Then it is maintained", func() {
				So(len(cmp.Maintained), ShouldEqual, 1)
				So(cmp.Maintained[0].Percent, ShouldAlmostEqual, 0.6667, 1e-3)
			})
		})

		Convey("When a higher-is-better metric falls beyond the floor", func() {
			cmp := c.Compare(
				assessment(map[types.Metric]float64{types.YoYoTest: 1200, types.PassingAccuracy: 81}),
				assessment(map[types.Metric]float64{types.YoYoTest: 1400, types.PassingAccuracy: 75}),
			)

			Convey("Then it is a decline while a rise is an improvement", func() {
				So(len(cmp.Declines), ShouldEqual, 1)
				So(cmp.Declines[0].Metric, ShouldEqual, types.YoYoTest)
				So(len(cmp.Improvements), ShouldEqual, 1)
				So(cmp.Improvements[0].Metric, ShouldEqual, types.PassingAccuracy)
				So(len(cmp.Changes()), ShouldEqual, 2)
			})
		})

		Convey("When baselines are zero or values missing", func() {
			cmp := c.Compare(
				assessment(map[types.Metric]float64{types.VO2Max: 50, types.BallControl: 4, types.YoYoTest: 1000}),
				assessment(map[types.Metric]float64{types.VO2Max: 0, types.Sprint30m: 4.5, types.YoYoTest: 1000}),
			)

			Convey("Then those metrics are incomparable, never classified", func() {
				So(cmp.Incomparable, ShouldResemble, []types.Metric{
					types.Sprint30m, types.VO2Max, types.BallControl, types.PassingAccuracy,
				})
				So(len(cmp.Maintained), ShouldEqual, 1)
				So(len(cmp.Improvements), ShouldEqual, 0)
				So(len(cmp.Declines), ShouldEqual, 0)
			})
		})

		Convey("When metrics outside the set change", func() {
			cmp := c.Compare(
				assessment(map[types.Metric]float64{types.BodyFat: 8}),
				assessment(map[types.Metric]float64{types.BodyFat: 15}),
			)
			So(len(cmp.Changes()), ShouldEqual, 0)
		})
	})

	Convey("Given a custom set and floor", t, func() {
		c := benchmark.New(benchmark.WithMetrics(types.BodyFat, "juggling"), benchmark.WithSignificancePct(10))
		So(c.Metrics(), ShouldResemble, []types.Metric{types.BodyFat})

		cmp := c.Compare(
			assessment(map[types.Metric]float64{types.BodyFat: 11}),
			assessment(map[types.Metric]float64{types.BodyFat: 12}),
		)
		So(len(cmp.Maintained), ShouldEqual, 1)
	})
}

func TestCompareBenchmarks(t *testing.T) {
	Convey("Given two benchmarks", t, func() {
		c := benchmark.New()
		base := model.Benchmark{OverallScore: 60, Assessment: assessment(map[types.Metric]float64{types.VO2Max: 50})}
		cur := model.Benchmark{OverallScore: 66, Assessment: assessment(map[types.Metric]float64{types.VO2Max: 55})}

		Convey("Then the overall change is reported", func() {
			cmp := c.CompareBenchmarks(cur, base)
			So(cmp.OverallChangePct, ShouldNotBeNil)
			So(*cmp.OverallChangePct, ShouldAlmostEqual, 10.0)
			So(len(cmp.Improvements), ShouldEqual, 1)
		})

		Convey("Then a zero baseline score leaves it unset", func() {
			base.OverallScore = 0
			So(c.CompareBenchmarks(cur, base).OverallChangePct, ShouldBeNil)
		})
	})
}
