package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	service "github.com/okian/shares/internal/app"
	"github.com/okian/shares/internal/config"
	"github.com/okian/shares/internal/domain/cik"
	"github.com/okian/shares/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// provider answers for the default company only.
func provider() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "CIK"+cik.Default) {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"entityName":"Amgen Inc","units":{"shares":[
			{"fy":2021,"val":577000000},{"fy":2023,"val":535000000},{"fy":2019,"val":1}]}}`))
	}))
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given the application wired against a local provider", t, func() {
		upstream := provider()
		defer upstream.Close()

		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.ProviderBaseURL = upstream.URL
		cfg.RelayBaseURL = ""
		cfg.HTTPTimeoutMS = 2000

		svc, err := service.FromConfig(cfg)
		convey.So(err, convey.ShouldBeNil)
		mux := newMux(ctx, svc, cfg.Locale)

		convey.Convey("When the page is requested with a failing CIK", func() {
			req := httptest.NewRequest(http.MethodGet, "/?CIK=0000320193", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.Convey("Then the default company is rendered", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Amgen Inc (Shares Outstanding)")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "577,000,000")
			})
		})

		convey.Convey("When the JSON API is requested without a CIK", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/shares", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			var body struct {
				CIK      string `json:"cik"`
				Fallback bool   `json:"fallback"`
				Result   struct {
					Min struct {
						Value      float64 `json:"value"`
						FiscalYear string  `json:"fiscal_year"`
					} `json:"min"`
				} `json:"result"`
			}

			convey.Convey("Then the default summary is returned", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(json.Unmarshal(w.Body.Bytes(), &body), convey.ShouldBeNil)
				convey.So(body.CIK, convey.ShouldEqual, cik.Default)
				convey.So(body.Fallback, convey.ShouldBeFalse)
				convey.So(body.Result.Min.Value, convey.ShouldEqual, 535000000)
				convey.So(body.Result.Min.FiscalYear, convey.ShouldEqual, "2023")
			})
		})

		convey.Convey("When the docs and metrics are requested", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz"} {
				req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestWriteTimeout(t *testing.T) {
	convey.Convey("Given upstream timeouts", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then an unbounded upstream leaves writes unbounded", func() {
			convey.So(writeTimeout(cfg), convey.ShouldEqual, 0)
		})

		convey.Convey("Then a bounded upstream covers two attempts", func() {
			cfg.HTTPTimeoutMS = 1500
			convey.So(writeTimeout(cfg), convey.ShouldEqual, 3*time.Second+readTimeout)
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the loop returns once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx, 10*time.Millisecond)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("updater did not stop")
			}
		})
	})
}
