package scoring_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchside/internal/domain/evaluation"
	"github.com/okian/pitchside/internal/domain/scoring"
	"github.com/okian/pitchside/internal/domain/types"
)

func result(m types.Metric, tier types.Tier) evaluation.Result {
	info, _ := types.Lookup(m)
	return evaluation.Result{Metric: m, Category: info.Category, Tier: tier}
}

func TestAggregate(t *testing.T) {
	Convey("Given evaluated metrics", t, func() {
		Convey("When every metric is excellent", func() {
			var ev evaluation.Evaluation
			for _, info := range types.Metrics() {
				ev.Results = append(ev.Results, result(info.Metric, types.Excellent))
			}
			s := scoring.Aggregate(ev)

			Convey("Then overall is 5 raw and 100 normalized", func() {
				So(s.OverallRaw, ShouldAlmostEqual, 5.0)
				So(s.Overall, ShouldAlmostEqual, 100.0)
				cs, ok := s.Category(types.Technical)
				So(ok, ShouldBeTrue)
				So(cs.Valid, ShouldEqual, 5)
			})
		})

		Convey("When categories are mixed", func() {
			ev := evaluation.Evaluation{Results: []evaluation.Result{
				result(types.Sprint30m, types.Excellent),
				result(types.YoYoTest, types.Poor),
				result(types.BallControl, types.Good),
				result(types.GameIntelligence, types.Average),
				result(types.Coachability, types.Good),
			}}
			s := scoring.Aggregate(ev)

			Convey("Then category means ignore missing metrics", func() {
				phys, _ := s.Category(types.Physical)
				So(phys.Raw, ShouldAlmostEqual, 3.5)
				So(phys.Normalized, ShouldAlmostEqual, 70.0)
				So(phys.Valid, ShouldEqual, 2)
			})

			Convey("Then overall uses the fixed weights", func() {
				want := 3.5*0.20 + 4*0.40 + 3*0.30 + 4*0.10
				So(s.OverallRaw, ShouldAlmostEqual, want)
				So(s.Overall, ShouldAlmostEqual, want*20)
			})

			Convey("Then normalized is always raw times twenty", func() {
				for _, cs := range s.Categories {
					So(cs.Normalized, ShouldAlmostEqual, cs.Raw*20)
				}
			})
		})

		Convey("When a category has no valid metric", func() {
			ev := evaluation.Evaluation{Results: []evaluation.Result{
				result(types.Sprint30m, types.Excellent),
				result(types.BallControl, types.Excellent),
				result(types.Positioning, types.Excellent),
			}}
			s := scoring.Aggregate(ev)

			Convey("Then it scores zero but keeps its weight", func() {
				psych, _ := s.Category(types.Psychological)
				So(psych.Raw, ShouldEqual, 0.0)
				So(psych.Valid, ShouldEqual, 0)
				So(s.OverallRaw, ShouldAlmostEqual, 5*0.9)
			})
		})

		Convey("When scores are mapped by category", func() {
			s := scoring.Aggregate(evaluation.Evaluation{Results: []evaluation.Result{result(types.Coachability, types.Good)}})
			So(s.ByCategory()[types.Psychological], ShouldAlmostEqual, 80.0)
			So(len(s.ByCategory()), ShouldEqual, 4)
		})
	})

	Convey("Weights sum to one", t, func() {
		total := 0.0
		for _, c := range types.Categories {
			total += scoring.Weight(c)
		}
		So(total, ShouldAlmostEqual, 1.0)
	})
}

func TestLevels(t *testing.T) {
	Convey("Given normalized overall scores", t, func() {
		So(scoring.PerformanceLevel(92), ShouldEqual, scoring.LevelElite)
		So(scoring.PerformanceLevel(85), ShouldEqual, scoring.LevelElite)
		So(scoring.PerformanceLevel(75), ShouldEqual, scoring.LevelAdvanced)
		So(scoring.PerformanceLevel(65), ShouldEqual, scoring.LevelIntermediate)
		So(scoring.PerformanceLevel(50), ShouldEqual, scoring.LevelDeveloping)
		So(scoring.PerformanceLevel(49.9), ShouldEqual, scoring.LevelBeginner)

		So(scoring.TargetLevel(39), ShouldEqual, "Intermediate Level")
		So(scoring.TargetLevel(40), ShouldEqual, "Advanced Level")
		So(scoring.TargetLevel(79.9), ShouldEqual, "Elite Level")
		So(scoring.TargetLevel(80), ShouldEqual, "Professional Level")
	})
}
