package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware())
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/health", "GET", "200"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/health", "GET", "200"))
	if after != before+1 {
		t.Errorf("http_requests_total = %v, want %v", after, before+1)
	}
}

func TestMiddleware_LabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("unmatched", "GET", "404"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("unmatched", "GET", "404"))
	if after != before+1 {
		t.Errorf("http_requests_total for unmatched = %v, want %v", after, before+1)
	}
}
