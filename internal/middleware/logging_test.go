package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": RequestID(c)})
	})

	t.Run("issues_request_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		id := rec.Header().Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected UUID request id, got %q", id)
		}
		if body := parseBody(t, rec); body["request_id"] != id {
			t.Errorf("expected handler to see %q, got %v", id, body["request_id"])
		}
	})

	t.Run("propagates_caller_request_id", func(t *testing.T) {
		incoming := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		req.Header.Set("X-Request-ID", incoming)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != incoming {
			t.Errorf("expected %q, got %q", incoming, got)
		}
	})

	t.Run("replaces_malformed_request_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		req.Header.Set("X-Request-ID", "not a uuid\n")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got == "not a uuid\n" {
			t.Error("expected malformed request id to be replaced")
		}
	})
}
