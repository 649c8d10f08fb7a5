package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	service "github.com/okian/draftassist/internal/app"
	"github.com/okian/draftassist/internal/config"
	"github.com/okian/draftassist/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the assembled HTTP handler", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		svc := service.FromConfig(cfg, logger.Discard())
		defer svc.Stop()
		h := newHandler(ctx, cfg, svc, logger.Discard())

		convey.Convey("When probing health before any refresh", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

			convey.Convey("Then the service reports loading", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "loading")
			})
		})

		convey.Convey("When the docs are requested", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))

			convey.Convey("Then the OpenAPI document is served", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When the UI origin sends a preflight", func() {
			req := httptest.NewRequest(http.MethodOptions, "/refresh", http.NoBody)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.Convey("Then CORS allows it", func() {
				convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "http://localhost:3000")
			})
		})

		convey.Convey("When another origin reads the API", func() {
			req := httptest.NewRequest(http.MethodGet, "/leagues", http.NoBody)
			req.Header.Set("Origin", "http://evil.example")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.Convey("Then no CORS grant is returned", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldBeEmpty)
			})
		})
	})
}
