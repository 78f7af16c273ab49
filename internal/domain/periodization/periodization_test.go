package periodization_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchside/internal/domain/gap"
	"github.com/okian/pitchside/internal/domain/periodization"
	"github.com/okian/pitchside/internal/domain/types"
)

// uniform builds a report where every category has the same gap.
func uniform(pct float64) gap.Report {
	var r gap.Report
	for _, c := range types.Categories {
		r.Categories = append(r.Categories, gap.CategoryGap{Category: c, Percent: pct, Valid: true})
	}
	return r
}

func sumWeeks(phases []periodization.Phase) int {
	total := 0
	for _, ph := range phases {
		total += ph.Weeks
	}
	return total
}

func TestPlanLength(t *testing.T) {
	Convey("Given average gaps across the band edges", t, func() {
		cases := []struct {
			gap    float64
			weeks  int
			phases int
		}{
			{0, 8, 2},
			{14, 8, 2},
			{15, 8, 2},
			{15.0001, 10, 2},
			{25, 10, 2},
			{25.0001, 12, 2},
			{30, 12, 2},
			{30.0001, 12, 3},
			{40, 12, 3},
			{41, 16, 3},
			{100, 16, 3},
		}

		Convey("Then totals and phase counts follow the bands and weeks always sum", func() {
			p := periodization.New()
			for _, c := range cases {
				plan := p.Plan(uniform(c.gap), 50)
				So(plan.TotalWeeks, ShouldEqual, c.weeks)
				So(len(plan.Phases), ShouldEqual, c.phases)
				So(sumWeeks(plan.Phases), ShouldEqual, plan.TotalWeeks)
				So(plan.Phases[len(plan.Phases)-1].Weeks, ShouldBeGreaterThanOrEqualTo, 1)
			}
		})
	})
}

func TestPhases(t *testing.T) {
	Convey("Given a sixteen week program with a Foundation phase", t, func() {
		phases := periodization.Phases(16, true, []string{"Technical skills"})

		Convey("Then Foundation and Development round up and Peak absorbs the rest", func() {
			So(phases[0].Name, ShouldEqual, periodization.Foundation)
			So(phases[0].Weeks, ShouldEqual, 6)
			So(phases[1].Name, ShouldEqual, periodization.Development)
			So(phases[1].Weeks, ShouldEqual, 7)
			So(phases[2].Name, ShouldEqual, periodization.Peak)
			So(phases[2].Weeks, ShouldEqual, 3)
		})
	})

	Convey("Given a twelve week program with a Foundation phase", t, func() {
		phases := periodization.Phases(12, true, nil)
		So([]int{phases[0].Weeks, phases[1].Weeks, phases[2].Weeks}, ShouldResemble, []int{5, 5, 2})

		Convey("Then Development falls back to generic focus", func() {
			So(phases[1].Focus, ShouldResemble, []string{"Skill refinement", "Tactics"})
		})
	})

	Convey("Given a ten week program without Foundation", t, func() {
		phases := periodization.Phases(10, false, []string{"Tactical skills"})
		So(len(phases), ShouldEqual, 2)
		So(phases[0].Weeks, ShouldEqual, 5)
		So(phases[1].Weeks, ShouldEqual, 5)
	})
}

func TestFocus(t *testing.T) {
	Convey("Given categories with different gaps", t, func() {
		r := gap.Report{Categories: []gap.CategoryGap{
			{Category: types.Physical, Percent: 20, Valid: true},
			{Category: types.Technical, Percent: 45, Valid: true},
			{Category: types.Tactical, Percent: 45, Valid: true},
			{Category: types.Psychological, Percent: 0, Valid: false},
		}}
		plan := periodization.New().Plan(r, 55)

		Convey("Then Development targets the two weakest in readable form", func() {
			var dev periodization.Phase
			for _, ph := range plan.Phases {
				if ph.Name == periodization.Development {
					dev = ph
				}
			}
			So(dev.Focus, ShouldResemble, []string{"Technical skills", "Tactical skills"})
		})

		Convey("Then a category without data counts as zero in the average", func() {
			So(plan.AvgGap, ShouldAlmostEqual, 27.5)
			So(plan.TotalWeeks, ShouldEqual, 12)
			So(len(plan.Phases), ShouldEqual, 2)
		})
	})

	Convey("Given a single category with a gap", t, func() {
		r := gap.Report{Categories: []gap.CategoryGap{
			{Category: types.Physical, Percent: 20, Valid: true},
			{Category: types.Technical, Percent: 0, Valid: true},
		}}
		plan := periodization.New().Plan(r, 80)
		So(plan.Phases[0].Focus, ShouldResemble, []string{"Physical skills"})
	})
}

func TestFallback(t *testing.T) {
	Convey("Given a report without any valid category", t, func() {
		plan := periodization.New().Plan(gap.Report{}, 0)

		Convey("Then the minimum Development and Peak plan is returned", func() {
			So(plan.Fallback, ShouldBeTrue)
			So(plan.TotalWeeks, ShouldEqual, periodization.MinWeeks)
			So(len(plan.Phases), ShouldEqual, 2)
			So(plan.Phases[0].Name, ShouldEqual, periodization.Development)
			So(plan.Phases[1].Name, ShouldEqual, periodization.Peak)
		})
	})
}

func TestFrequency(t *testing.T) {
	Convey("Given overall scores", t, func() {
		So(periodization.Frequency(39.9), ShouldEqual, 3)
		So(periodization.Frequency(40), ShouldEqual, 4)
		So(periodization.Frequency(69.9), ShouldEqual, 4)
		So(periodization.Frequency(70), ShouldEqual, 5)
	})

	Convey("Given a plan", t, func() {
		plan := periodization.New().Plan(uniform(50), 45)

		Convey("Then three variants derive from the same phases", func() {
			So(len(plan.Variants), ShouldEqual, 3)
			for _, v := range plan.Variants {
				So(len(v.Phases), ShouldEqual, len(plan.Phases))
				total := 0
				for i, pd := range v.Phases {
					So(pd.Weeks, ShouldEqual, plan.Phases[i].Weeks)
					So(pd.TrainingDays, ShouldEqual, pd.Weeks*v.DaysPerWeek)
					total += pd.TrainingDays
				}
				So(v.TotalDays, ShouldEqual, total)
				So(v.TotalDays, ShouldEqual, plan.TotalWeeks*v.DaysPerWeek)
			}
		})

		Convey("Then exactly the recommended frequency is flagged", func() {
			rec, ok := plan.Recommended()
			So(ok, ShouldBeTrue)
			So(rec.DaysPerWeek, ShouldEqual, 4)
			So(plan.RecommendedDays, ShouldEqual, 4)
			n := 0
			for _, v := range plan.Variants {
				if v.Recommended {
					n++
				}
			}
			So(n, ShouldEqual, 1)
		})
	})
}

func TestAverageGap(t *testing.T) {
	Convey("Given data in only two of the four categories", t, func() {
		r := gap.Report{Categories: []gap.CategoryGap{
			{Category: types.Physical, Percent: 20, Valid: true},
			{Category: types.Technical, Percent: 60, Valid: true},
			{Category: types.Tactical},
			{Category: types.Psychological},
		}}

		Convey("Then the empty categories pull the mean down", func() {
			avg, ok := periodization.AverageGap(r)
			So(ok, ShouldBeTrue)
			So(avg, ShouldAlmostEqual, 20.0)
			So(periodization.TotalWeeks(avg), ShouldEqual, 10)
		})
	})

	Convey("Given no category with data", t, func() {
		avg, ok := periodization.AverageGap(gap.Report{})
		So(ok, ShouldBeFalse)
		So(avg, ShouldEqual, 0.0)
	})
}
