package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bharatvansh/habit-tracker-sub000/internal/dna"
	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
	"github.com/bharatvansh/habit-tracker-sub000/internal/handler"
	"github.com/bharatvansh/habit-tracker-sub000/internal/reminder"
	"github.com/gin-gonic/gin"
)

type memStore struct {
	data map[string]string
}

func (s *memStore) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *memStore) Set(key, value string) {
	s.data[key] = value
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memStore{data: make(map[string]string)}
	habits := habit.NewRepository(store, "test:habits")
	reminders := reminder.NewRepository(store, "test:reminders", time.Now)
	api := handler.NewAPI(habits, reminders, dna.NewGenerator(), nil)

	return Setup(api, "test-secret")
}

func TestPing(t *testing.T) {
	r := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestAPIRequiresSession(t *testing.T) {
	r := setupTestRouter(t)

	for _, target := range []string{"/api/habits", "/api/dna", "/api/analytics/summary", "/api/reminders"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected status 401, got %d", target, w.Code)
		}
	}
}
