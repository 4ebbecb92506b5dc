package stats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamebalance/internal/identity"
	"gamebalance/internal/middleware"
	"gamebalance/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeValidator struct{}

func (fakeValidator) ValidateToken(token string) (*identity.Identity, error) {
	if token == "valid" {
		return &identity.Identity{UserID: "user-1"}, nil
	}
	return nil, errors.New("bad token")
}

type fakeStatsService struct {
	userID string
	err    error
}

func (f *fakeStatsService) GetStats(_ context.Context, userID string) (*Stats, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &Stats{TodayMinutes: 45, WeeklyTotal: 240, DailyData: map[string]int{"2025-04-16": 45}, TotalSessions: 3}, nil
}

func (f *fakeStatsService) InvalidateCache(context.Context, string) {}

func (f *fakeStatsService) HandleSessionEnded(utils.Event) {}

func serveStats(svc Service, token string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("")
	group.Use(middleware.RequireAuth(fakeValidator{}, zap.NewNop()))
	RegisterRoutes(group, NewHandler(svc, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGetStatsHandler(t *testing.T) {
	svc := &fakeStatsService{}
	w := serveStats(svc, "valid")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"todayMinutes":45,"weeklyTotal":240,"dailyData":{"2025-04-16":45},"totalSessions":3}`, w.Body.String())
	assert.Equal(t, "user-1", svc.userID)
}

func TestGetStatsHandlerUnauthorized(t *testing.T) {
	w := serveStats(&fakeStatsService{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetStatsHandlerFailure(t *testing.T) {
	w := serveStats(&fakeStatsService{err: errors.New("boom")}, "valid")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
