package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	service "github.com/okian/shares/internal/app"
	"github.com/okian/shares/internal/domain/shares"
	"github.com/okian/shares/internal/presenter"
	"github.com/okian/shares/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type fakeRunner struct {
	result *shares.Result
	report service.Report
	raw    string
	calls  int
}

func (f *fakeRunner) Run(_ context.Context, raw string, sink presenter.Sink) service.Report {
	f.calls++
	f.raw = raw
	p, _ := presenter.New("en-US")
	p.Present(sink, f.result)
	return f.report
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return w, doc
}

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler whose page load succeeds", t, func() {
		res := &shares.Result{
			EntityName: "Apple Inc.",
			Max:        shares.Extreme{Value: 1234567, FiscalYear: "2022"},
			Min:        shares.Extreme{Value: 7654, FiscalYear: "2024"},
		}
		runner := &fakeRunner{
			result: res,
			report: service.Report{
				RequestID: "req-42",
				Primary:   service.Attempt{CIK: "0000320193", Result: res},
			},
		}
		mux := http.NewServeMux()
		Register(context.Background(), mux, runner, "en-US")

		Convey("When requesting the page with a CIK", func() {
			w, doc := get(t, mux, "/?CIK=0000320193")

			Convey("Then the title and the five fields are rendered", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(runner.raw, ShouldEqual, "0000320193")
				So(doc.Find("title").Text(), ShouldEqual, "Apple Inc. (Shares Outstanding)")
				So(doc.Find("#share-entity-name").Text(), ShouldEqual, "Apple Inc.")
				So(doc.Find("#share-max-value").Text(), ShouldEqual, "1,234,567")
				So(doc.Find("#share-max-fy").Text(), ShouldEqual, "2022")
				So(doc.Find("#share-min-value").Text(), ShouldEqual, "7,654")
				So(doc.Find("#share-min-fy").Text(), ShouldEqual, "2024")
				So(doc.Find("#cik").AttrOr("value", ""), ShouldEqual, "0000320193")
				So(doc.Find("body").AttrOr("data-request-id", ""), ShouldEqual, "req-42")
				So(doc.Find("html").AttrOr("lang", ""), ShouldEqual, "en-US")
			})
		})

		Convey("When requesting an unknown path", func() {
			req := httptest.NewRequest(http.MethodGet, "/some-asset", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the page is requested with HEAD", func() {
			req := httptest.NewRequest(http.MethodHead, "/?CIK=0000320193", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then only headers are sent and nothing is resolved", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.Len(), ShouldEqual, 0)
				So(runner.calls, ShouldEqual, 0)
			})
		})

		Convey("When posting to the page", func() {
			req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the method is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})

	Convey("Given a page load where nothing resolves", t, func() {
		runner := &fakeRunner{report: service.Report{
			RequestID: "req-43",
			Primary:   service.Attempt{CIK: "0000000001", Kind: "http"},
			Fallback:  &service.Attempt{CIK: "0000318154", Kind: "no_data"},
		}}
		h := NewRootHandler(runner, "")

		Convey("When requesting the page", func() {
			w, doc := get(t, http.HandlerFunc(h.HandleRoot), "/?CIK=0000000001")

			Convey("Then the placeholders stay and no error is shown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(doc.Find("title").Text(), ShouldEqual, presenter.PlaceholderTitle)
				for _, f := range presenter.Fields {
					So(doc.Find("#"+string(f)).Text(), ShouldEqual, presenter.PlaceholderText)
				}
				So(w.Body.String(), ShouldNotContainSubstring, "no_data")
				So(doc.Find("#cik").AttrOr("value", ""), ShouldEqual, "0000000001")
			})
		})
	})

	Convey("Given an entity name with markup", t, func() {
		res := &shares.Result{EntityName: `<script>alert(1)</script>`, Max: shares.Extreme{Value: 1, FiscalYear: "2021"}, Min: shares.Extreme{Value: 1, FiscalYear: "2021"}}
		h := NewRootHandler(&fakeRunner{result: res, report: service.Report{Primary: service.Attempt{CIK: "0000000001", Result: res}}}, "en-US")

		Convey("Then it is escaped", func() {
			w, doc := get(t, http.HandlerFunc(h.HandleRoot), "/")
			So(doc.Find("script").Length(), ShouldEqual, 0)
			So(doc.Find("#share-entity-name").Text(), ShouldEqual, `<script>alert(1)</script>`)
			So(w.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then registering should panic", func() {
			So(func() {
				Register(context.Background(), nil, &fakeRunner{}, "en-US")
			}, ShouldPanic)
		})
	})
}
