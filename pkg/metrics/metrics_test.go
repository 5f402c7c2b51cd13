package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the default naming", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "habitat")
				So(manager.subsystem, ShouldEqual, "evaluator")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.evaluations.WithLabelValues("scored").Inc()

			Convey("Then collectors should carry the custom names and labels", func() {
				mfs, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(mfs), ShouldBeGreaterThan, 0)
				So(mfs[0].GetName(), ShouldStartWith, "test_unit_")

				found := false
				for _, mf := range mfs {
					if mf.GetName() == "test_unit_evaluations_total" {
						found = true
						labels := mf.GetMetric()[0].GetLabel()
						names := make([]string, 0, len(labels))
						for _, l := range labels {
							names = append(names, l.GetName())
						}
						So(names, ShouldContain, "env")
						So(names, ShouldContain, "outcome")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should panic", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a freshly configured global manager", t, func() {
		Configure(WithNamespace("rec"))

		Convey("When recording evaluations and penalties", func() {
			RecordEvaluation("scored", 35)
			RecordEvaluation("scored", 50)
			RecordEvaluation("flare_override", 0)
			RecordPenalty("temperature")
			RecordPenalty("temperature")
			RecordPenalty("mass")

			Convey("Then counters should reflect them", func() {
				m := current()
				So(testutil.ToFloat64(m.evaluations.WithLabelValues("scored")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.evaluations.WithLabelValues("flare_override")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(m.penalties.WithLabelValues("temperature")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.penalties.WithLabelValues("mass")), ShouldEqual, 1.0)
			})

			Convey("And the registry should expose the score histogram", func() {
				mfs, err := Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(mfs))
				for _, mf := range mfs {
					names = append(names, mf.GetName())
				}
				So(names, ShouldContain, "rec_evaluator_score")
				So(names, ShouldContain, "rec_evaluator_evaluations_total")
			})
		})

		Convey("When recording HTTP, error and system metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					RecordEvaluationLatency(0.02)
					RecordEvaluationError("canceled")
					RecordHTTPRequest("evaluate", "POST", "200")
					RecordHTTPRequestDuration("evaluate", "POST", "200", 1.5)
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("evaluate", "POST", "client_error")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})
	})
}
