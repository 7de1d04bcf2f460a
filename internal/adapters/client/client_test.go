package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/parcast/internal/adapters/artifacts"
	"github.com/okian/parcast/internal/adapters/http/api"
	service "github.com/okian/parcast/internal/app"
	"github.com/okian/parcast/internal/domain/features"
	"github.com/okian/parcast/internal/domain/forecast"
	. "github.com/smartystreets/goconvey/convey"
)

type stubDeps struct {
	opts features.Options
	res  service.Forecast
	err  error
	got  features.Input
}

func (s *stubDeps) Options(context.Context) (features.Options, error) { return s.opts, s.err }

func (s *stubDeps) Forecast(_ context.Context, in features.Input) (service.Forecast, error) {
	s.got = in
	return s.res, s.err
}

type noStats struct{}

func (noStats) GetStats() map[string]interface{} { return map[string]interface{}{} }

func newServer(deps *stubDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, noStats{}).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestClient(t *testing.T) {
	Convey("Given a forecast server", t, func() {
		deps := &stubDeps{
			opts: features.Options{Bars: []string{"Main"}, Brands: []string{"Absolut"}, Alcohols: []string{"Vodka"}},
			res:  service.Forecast{ID: "f-1", Predicted: 20, Recommended: 23, Unit: "ml"},
		}
		srv := newServer(deps)
		defer srv.Close()
		c := New(srv.URL+"/", WithTimeout(time.Second))
		ctx := context.Background()

		Convey("When fetching options", func() {
			opts, err := c.Options(ctx)

			Convey("Then they match the server's", func() {
				So(err, ShouldBeNil)
				So(opts, ShouldResemble, deps.opts)
			})
		})

		Convey("When forecasting", func() {
			in := features.Input{Bar: "Main", Brand: "Absolut", Alcohol: "Vodka", Month: 2, Lag1: 18.5}
			res, err := c.Forecast(ctx, in)

			Convey("Then the input round-trips and the result is decoded", func() {
				So(err, ShouldBeNil)
				So(deps.got, ShouldResemble, in)
				So(res, ShouldResemble, deps.res)
			})
		})

		Convey("When the server rejects the input", func() {
			deps.err = errors.Join(service.ErrInvalidInput, errors.New("month must be <= 12"))
			_, err := c.Forecast(ctx, features.Input{Month: 13})

			Convey("Then the error maps back to the local sentinel", func() {
				var apiErr *APIError
				So(errors.As(err, &apiErr), ShouldBeTrue)
				So(apiErr.Status, ShouldEqual, http.StatusBadRequest)
				So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
				So(errors.Is(err, forecast.ErrPrediction), ShouldBeFalse)
			})
		})

		Convey("When the server could not load its artifacts", func() {
			deps.err = &artifacts.LoadError{Artifact: artifacts.ArtifactModel, Path: "m.json", Err: errors.New("missing")}
			_, err := c.Options(ctx)

			Convey("Then the error is an artifact load error", func() {
				So(errors.Is(err, artifacts.ErrArtifactLoad), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "503")
			})
		})
	})

	Convey("Given no server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		Convey("Then requests fail as unreachable", func() {
			_, err := New(url).Options(context.Background())
			So(errors.Is(err, ErrUnreachable), ShouldBeTrue)
		})
	})
}
