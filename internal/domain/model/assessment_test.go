package model_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/types"
)

func TestNewAssessment(t *testing.T) {
	Convey("Given raw metric values", t, func() {
		at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		values := map[types.Metric]float64{
			types.Sprint30m: 4.3,
			types.VO2Max:    math.NaN(),
			types.YoYoTest:  math.Inf(1),
			types.BodyFat:   11,
		}

		Convey("When an assessment is built", func() {
			a, err := model.NewAssessment("as-1", "ath-1", 16, "midfielder", at, values)
			So(err, ShouldBeNil)

			Convey("Then NaN and Inf read as missing", func() {
				So(a.Len(), ShouldEqual, 2)
				_, ok := a.Value(types.VO2Max)
				So(ok, ShouldBeFalse)
				_, ok = a.Value(types.YoYoTest)
				So(ok, ShouldBeFalse)
				v, ok := a.Value(types.Sprint30m)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 4.3)
			})

			Convey("Then later changes to the input do not leak in", func() {
				values[types.Sprint30m] = 9.9
				v, _ := a.Value(types.Sprint30m)
				So(v, ShouldEqual, 4.3)
			})

			Convey("Then Values hands out a copy", func() {
				cp := a.Values()
				cp[types.BodyFat] = 40
				v, _ := a.Value(types.BodyFat)
				So(v, ShouldEqual, 11.0)
			})
		})

		Convey("When a metric is not registered", func() {
			_, err := model.NewAssessment("as-2", "ath-1", 16, "", at, map[types.Metric]float64{"juggling": 80})

			Convey("Then ErrUnknownMetric is returned", func() {
				So(errors.Is(err, model.ErrUnknownMetric), ShouldBeTrue)
			})
		})
	})
}

func TestAssessmentJSON(t *testing.T) {
	Convey("Given an assessment payload with a null metric", t, func() {
		payload := `{"id":"as-9","athlete_id":"ath-9","age":13,"recorded_at":"2026-01-10T10:00:00Z",
			"metrics":{"sprint_30m":4.6,"vo2_max":null,"ball_control":4}}`

		Convey("When it is decoded", func() {
			var a model.Assessment
			err := json.Unmarshal([]byte(payload), &a)
			So(err, ShouldBeNil)

			Convey("Then null values are absent", func() {
				So(a.ID, ShouldEqual, "as-9")
				So(a.Age, ShouldEqual, 13)
				So(a.Len(), ShouldEqual, 2)
				_, ok := a.Value(types.VO2Max)
				So(ok, ShouldBeFalse)
			})

			Convey("Then it encodes back with the recorded metrics", func() {
				b, err := json.Marshal(a)
				So(err, ShouldBeNil)
				var back model.Assessment
				So(json.Unmarshal(b, &back), ShouldBeNil)
				So(back.Values(), ShouldResemble, a.Values())
				So(back.RecordedAt.Equal(a.RecordedAt), ShouldBeTrue)
			})
		})

		Convey("When the payload names an unknown metric", func() {
			var a model.Assessment
			err := json.Unmarshal([]byte(`{"id":"x","metrics":{"juggling":3}}`), &a)

			Convey("Then decoding fails", func() {
				So(errors.Is(err, model.ErrUnknownMetric), ShouldBeTrue)
			})
		})
	})

	Convey("NewID yields distinct identifiers", t, func() {
		So(model.NewID(), ShouldNotEqual, model.NewID())
	})
}
