package game

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRepository struct {
	games []*Game
	err   error
}

func (f *fakeRepository) GetAllGames() ([]*Game, error) {
	return f.games, f.err
}

func serveGames(repo Repository) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine, NewHandler(NewService(repo), zap.NewNop()))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games", nil))
	return w
}

func TestGetAllGames(t *testing.T) {
	w := serveGames(&fakeRepository{games: []*Game{
		{ID: 1, Slug: "mobile-legends", Name: "Mobile Legends", Icon: "🎮", Color: "from-purple-500 to-pink-500"},
	}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"mobile-legends"`)
	assert.Contains(t, w.Body.String(), `"name":"Mobile Legends"`)
}

func TestGetAllGamesEmpty(t *testing.T) {
	w := serveGames(&fakeRepository{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"games":[]}`, w.Body.String())
}

func TestGetAllGamesFailure(t *testing.T) {
	w := serveGames(&fakeRepository{err: errors.New("connection refused")})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to fetch games"}`, w.Body.String())
}
