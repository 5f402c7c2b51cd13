package site

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a registered site handler", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("Then GET / should serve the landing page", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "/api-docs")
		})

		Convey("Then unknown paths should not be served", func() {
			for _, path := range []string{"/index.html", "/some-asset", "/evaluate"} {
				req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			}
		})

		Convey("Then POST / should not be served", func() {
			req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given the embedded file system", t, func() {
		Convey("Then index.html should be present", func() {
			f, err := FS().Open("index.html")
			So(err, ShouldBeNil)
			defer func() { _ = f.Close() }()
			data, err := io.ReadAll(f)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "<title>habitat</title>")
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
