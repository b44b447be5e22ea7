package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmatch/models"
	"nexusmatch/seed"
	"nexusmatch/services"
	"nexusmatch/storage"
)

func newTestApp(t *testing.T) (*fiber.App, *services.Store) {
	t.Helper()
	store := services.New(storage.NewMemory(), seed.NewRandomWithSeed(nil, 7))
	store.Load(context.Background())

	app := fiber.New()
	SetupRoutes(app, store)
	return app, store
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func doList(t *testing.T, app *fiber.App, target string, dst any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealthAndCatalog(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["loading"])

	status, body = do(t, app, http.MethodGet, "/catalog", "")
	assert.Equal(t, fiber.StatusOK, status)
	games := body["games"].([]any)
	assert.Len(t, games, 10)
	assert.Equal(t, map[string]any{"name": "League of Legends", "key": "league-of-legends"}, games[2])
}

func TestProfileFlow(t *testing.T) {
	app, _ := newTestApp(t)

	_, body := do(t, app, http.MethodGet, "/profile", "")
	assert.Equal(t, false, body["onboarded"])

	status, _ := do(t, app, http.MethodPost, "/profile", `{"gamertag":"ab"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = do(t, app, http.MethodPost, "/profile", `{"gamertag":"NightOwl","preferredGames":["Valorant"]}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "NightOwl", body["gamertag"])
	assert.Equal(t, float64(500), body["coins"])

	status, _ = do(t, app, http.MethodPost, "/profile", `{"gamertag":"Another"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = do(t, app, http.MethodPatch, "/profile", `{"bio":"IGL","coins":999999}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "IGL", body["bio"])
	assert.Equal(t, float64(500), body["coins"], "economy fields are not editable")

	status, body = do(t, app, http.MethodPost, "/profile/daily-reward", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	_, body = do(t, app, http.MethodPost, "/profile/daily-reward", "")
	assert.Equal(t, false, body["ok"])

	_, body = do(t, app, http.MethodGet, "/profile", "")
	assert.Equal(t, true, body["onboarded"])
	assert.Equal(t, false, body["canClaimDaily"])
	assert.InDelta(t, 0.25, body["xpProgress"], 0.0001)

	status, _ = do(t, app, http.MethodPost, "/profile/reset", "")
	require.Equal(t, fiber.StatusOK, status)
	_, body = do(t, app, http.MethodGet, "/profile", "")
	assert.Equal(t, false, body["onboarded"])
}

func TestMatchRoutes(t *testing.T) {
	app, store := newTestApp(t)

	status, _ := do(t, app, http.MethodPost, "/matches", `{"gameName":"CS2"}`)
	assert.Equal(t, fiber.StatusConflict, status, "hosting needs a profile")

	do(t, app, http.MethodPost, "/profile", `{"gamertag":"NightOwl"}`)

	status, body := do(t, app, http.MethodPost, "/matches", `{"gameName":"league-of-legends","playersNeeded":2}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "League of Legends", body["gameName"])
	id := body["id"].(string)
	assert.Equal(t, int64(490), store.Profile().Coins)

	var mine []models.MatchRequest
	doList(t, app, "/matches?mine=true", &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0].ID)

	var all []models.MatchRequest
	doList(t, app, "/matches?status=All&game=All", &all)
	assert.Len(t, all, len(store.Matches()))

	var lol []models.MatchRequest
	doList(t, app, "/matches?game=league-of-legends", &lol)
	for _, m := range lol {
		assert.Equal(t, "League of Legends", m.GameName)
	}

	_, body = do(t, app, http.MethodPost, "/matches/"+id+"/join", "")
	assert.Equal(t, true, body["ok"])
	_, body = do(t, app, http.MethodPost, "/matches/"+id+"/join", "")
	assert.Equal(t, true, body["ok"])
	_, body = do(t, app, http.MethodPost, "/matches/"+id+"/join", "")
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "filled", body["match"].(map[string]any)["status"])

	status, body = do(t, app, http.MethodPost, "/matches/unknown/join", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["ok"])
}

func TestHostMatchInsufficientCoins(t *testing.T) {
	app, store := newTestApp(t)
	do(t, app, http.MethodPost, "/profile", `{"gamertag":"NightOwl"}`)
	ok, err := store.SpendCoins(context.Background(), 495)
	require.NoError(t, err)
	require.True(t, ok)

	status, _ := do(t, app, http.MethodPost, "/matches", `{}`)
	assert.Equal(t, fiber.StatusPaymentRequired, status)
}

func TestConnectionAndMessageRoutes(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/profile", `{"gamertag":"NightOwl"}`)

	status, body := do(t, app, http.MethodPost, "/connections", `{"userId":"u42","gamertag":"Rival","games":["CS2"],"level":9}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["ok"])
	status, body = do(t, app, http.MethodPost, "/connections", `{"userId":"u42","gamertag":"Rival"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["ok"])

	var pending []models.Connection
	doList(t, app, "/connections?status=pending&q=rival", &pending)
	require.Len(t, pending, 1)

	_, body = do(t, app, http.MethodPost, "/connections/"+pending[0].ID+"/accept", "")
	require.Equal(t, true, body["ok"])
	conv := body["conversation"].(map[string]any)
	assert.Equal(t, "u42", conv["participantId"])
	assert.Equal(t, "Connection accepted!", conv["lastMessage"])
	convID := conv["id"].(string)

	status, _ = do(t, app, http.MethodPost, "/conversations/"+convID+"/messages", `{"text":"   "}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	_, body = do(t, app, http.MethodPost, "/conversations/"+convID+"/messages", `{"text":"gg"}`)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "gg", body["conversation"].(map[string]any)["lastMessage"])

	status, _ = do(t, app, http.MethodGet, "/conversations/nope", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	_, body = do(t, app, http.MethodPost, "/connections/conn_7/reject", "")
	assert.Equal(t, true, body["ok"])
}

func TestTournamentRoutes(t *testing.T) {
	app, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/profile", `{"gamertag":"NightOwl"}`)

	var live []models.Tournament
	doList(t, app, "/tournaments?status=live", &live)
	require.Len(t, live, 1)
	assert.Equal(t, "t3", live[0].ID)

	_, body := do(t, app, http.MethodPost, "/tournaments/t1/register", "")
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(450), body["coins"])

	status, _ := do(t, app, http.MethodPost, "/tournaments/t404/register", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRoutesWaitForLoad(t *testing.T) {
	store := services.New(storage.NewMemory(), seed.NewRandomWithSeed(nil, 7))
	app := fiber.New()
	SetupRoutes(app, store)

	status, _ := do(t, app, http.MethodGet, "/matches", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	status, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["loading"])
}
