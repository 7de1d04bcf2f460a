package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.forecasts.Inc()

			Convey("Then metrics are named and labelled accordingly", func() {
				expected := `
# HELP test_ns_test_sub_forecasts_total Total number of successful forecasts
# TYPE test_ns_test_sub_forecasts_total counter
test_ns_test_sub_forecasts_total{env="test"} 1
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_ns_test_sub_forecasts_total")
				So(err, ShouldBeNil)
			})
		})

		Convey("When the same names are registered twice on one registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then registration panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording a forecast", func() {
			before := testutil.ToFloat64(globalManager.forecasts)
			RecordForecast(115)

			Convey("Then the counter increases", func() {
				So(testutil.ToFloat64(globalManager.forecasts), ShouldEqual, before+1)
			})
		})

		Convey("When recording defaulted columns", func() {
			before := testutil.ToFloat64(globalManager.defaultedColumns.WithLabelValues("IsHoliday"))
			RecordDefaultedColumns([]string{"IsHoliday", "IsHoliday"})

			Convey("Then each column is counted", func() {
				So(testutil.ToFloat64(globalManager.defaultedColumns.WithLabelValues("IsHoliday")), ShouldEqual, before+2)
			})
		})

		Convey("When recording the remaining metrics", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordForecastError("prediction")
					RecordPredictionLatency(1.5)
					RecordArtifactLoad("model", 3, true)
					RecordArtifactLoad("feature template", 1, false)
					UpdateTemplateColumns(42)
					RecordHTTPRequest("forecast", "POST", "200")
					RecordHTTPRequestDuration("forecast", "POST", "200", 2)
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("forecast", "POST", "client_error")
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(8)
					RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
				So(testutil.ToFloat64(globalManager.templateColumns), ShouldEqual, 42.0)
			})
		})

		Convey("Then the registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
