package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newFixedServer(doc string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	})
	return httptest.NewServer(mux)
}

func TestProbeRun(t *testing.T) {
	Convey("Given a healthy service with a stable document", t, func() {
		srv := newFixedServer(`{"a":1,"b":[2,3]}`)
		defer srv.Close()

		config := &Config{
			BaseURL:  srv.URL,
			Requests: 20,
			Workers:  4,
			Timeout:  5 * time.Second,
		}

		Convey("When running the probe", func() {
			err := Run(context.Background(), config)

			Convey("Then all responses agree and the probe passes", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a service that serves invalid JSON", t, func() {
		srv := newFixedServer(`{"a":`)
		defer srv.Close()

		config := &Config{
			BaseURL:  srv.URL,
			Requests: 3,
			Workers:  2,
			Timeout:  5 * time.Second,
		}

		Convey("When running the probe", func() {
			err := Run(context.Background(), config)

			Convey("Then verification fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given an unreachable service", t, func() {
		config := &Config{
			BaseURL:  "http://127.0.0.1:1",
			Requests: 1,
			Workers:  1,
			Timeout:  500 * time.Millisecond,
		}

		Convey("When running the probe", func() {
			err := Run(context.Background(), config)

			Convey("Then the health check fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestVerifyResults(t *testing.T) {
	Convey("Given fetch results", t, func() {
		config := &Config{}

		Convey("When all successful results agree", func() {
			results := []fetchResult{
				{doc: map[string]any{"a": float64(1)}, status: 200},
				{doc: map[string]any{"a": float64(1)}, status: 200},
				{err: context.DeadlineExceeded},
			}
			stats := &Stats{Successful: 2, Failed: 1}

			Convey("Then verification passes", func() {
				So(verifyResults(config, results, stats), ShouldBeNil)
				So(stats.Mismatched, ShouldEqual, 0)
			})
		})

		Convey("When a response disagrees", func() {
			results := []fetchResult{
				{doc: map[string]any{"a": float64(1)}, status: 200},
				{doc: map[string]any{"a": float64(2)}, status: 200},
			}
			stats := &Stats{Successful: 2}

			Convey("Then verification fails with a mismatch count", func() {
				So(verifyResults(config, results, stats), ShouldNotBeNil)
				So(stats.Mismatched, ShouldEqual, 1)
			})
		})

		Convey("When nothing succeeded", func() {
			results := []fetchResult{{err: context.DeadlineExceeded}}
			stats := &Stats{Failed: 1}

			Convey("Then verification reports the absence of a reference", func() {
				So(verifyResults(config, results, stats), ShouldNotBeNil)
			})
		})
	})
}
