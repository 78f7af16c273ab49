package seed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchside/internal/adapters/http/api"
	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/types"
	"github.com/okian/pitchside/internal/seed"
	"github.com/okian/pitchside/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerator(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		a := seed.NewGenerator(42).Pair("ath-1")
		b := seed.NewGenerator(42).Pair("ath-1")

		Convey("Then they produce the same values", func() {
			So(a.Baseline.Values(), ShouldResemble, b.Baseline.Values())
			So(a.FollowUp.Values(), ShouldResemble, b.FollowUp.Values())
			So(a.Baseline.Age, ShouldEqual, b.Baseline.Age)
		})

		Convey("Then the pair belongs to one athlete, baseline first", func() {
			So(a.Baseline.AthleteID, ShouldEqual, "ath-1")
			So(a.FollowUp.AthleteID, ShouldEqual, "ath-1")
			So(a.Baseline.ID, ShouldNotEqual, a.FollowUp.ID)
			So(a.Baseline.RecordedAt.Before(a.FollowUp.RecordedAt), ShouldBeTrue)
			So(a.Baseline.Age, ShouldBeBetweenOrEqual, 12, 26)
		})

		Convey("Then both assessments measure the same metrics", func() {
			for m := range a.Baseline.Values() {
				_, ok := a.FollowUp.Value(m)
				So(ok, ShouldBeTrue)
			}
			So(a.Baseline.Len(), ShouldEqual, a.FollowUp.Len())
		})
	})

	Convey("Given many generated athletes", t, func() {
		pairs := seed.NewGenerator(7).Pairs(50)

		Convey("Then rating scales stay whole numbers from 1 to 5", func() {
			for _, p := range pairs {
				for _, a := range []map[types.Metric]float64{p.Baseline.Values(), p.FollowUp.Values()} {
					if v, ok := a[types.BallControl]; ok {
						So(v, ShouldBeBetweenOrEqual, 1.0, 5.0)
						So(v, ShouldEqual, float64(int(v)))
					}
				}
			}
		})

		Convey("Then athlete ids are unique", func() {
			seen := map[string]bool{}
			for _, p := range pairs {
				So(seen[p.Baseline.AthleteID], ShouldBeFalse)
				seen[p.Baseline.AthleteID] = true
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running server", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc, err := service.New(service.WithWorkerCount(2))
		So(err, ShouldBeNil)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		mux := http.NewServeMux()
		api.NewServer(svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "seeded.json")
		cfg := &seed.Config{
			BaseURL:      srv.URL,
			Athletes:     8,
			Workers:      4,
			Timeout:      5 * time.Second,
			WaitTimeout:  10 * time.Second,
			PollInterval: 10 * time.Millisecond,
			Seed:         99,
			OutputFile:   out,
		}

		Convey("When seeding it", func() {
			stats, err := seed.Run(ctx, cfg)

			Convey("Then every assessment is accepted and progress verifies", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 16)
				So(stats.Submitted, ShouldEqual, 16)
				So(stats.Accepted, ShouldEqual, 16)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.ProgressRetrieved, ShouldEqual, 8)
				So(stats.Improvements+stats.Declines+stats.Maintained, ShouldBeGreaterThan, 0)
				So(svc.GetStats()["benchmarks"], ShouldEqual, 16)
			})

			Convey("Then the assessments are written out", func() {
				So(err, ShouldBeNil)
				info, statErr := os.Stat(out)
				So(statErr, ShouldBeNil)
				So(info.Size(), ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given no server", t, func() {
		cfg := &seed.Config{
			BaseURL:      "http://127.0.0.1:1",
			Athletes:     1,
			Workers:      1,
			Timeout:      time.Second,
			WaitTimeout:  time.Second,
			PollInterval: 10 * time.Millisecond,
		}

		Convey("Then the health check fails", func() {
			_, err := seed.Run(context.Background(), cfg)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}
