package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/weight-tracker/internal/config"
	"github.com/iliyamo/weight-tracker/internal/repository"
	"github.com/iliyamo/weight-tracker/internal/sheet"
	"github.com/iliyamo/weight-tracker/internal/utils"
)

// fakeStore is a minimal in-memory sheet.Store for handler tests.
type fakeStore struct {
	mu     sync.Mutex
	tables map[string]sheet.Table
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: map[string]sheet.Table{
		"users":   {Header: []string{"user_id", "password_hash", "height_cm"}},
		"weights": {Header: []string{"year", "month", "day", "user_id", "weight"}},
	}}
}

func (f *fakeStore) ReadAll(_ context.Context, table string) (sheet.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tables[table]
	rows := make([][]string, len(t.Rows))
	copy(rows, t.Rows)
	return sheet.Table{Header: append([]string(nil), t.Header...), Rows: rows}, nil
}

func (f *fakeStore) Append(_ context.Context, table string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tables[table]
	t.Rows = append(t.Rows, append([]string(nil), row...))
	f.tables[table] = t
	return nil
}

func (f *fakeStore) UpdateCell(_ context.Context, table string, rowIndex int, column, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tables[table]
	col := t.Col(column)
	if col < 0 {
		return &sheet.SchemaError{Table: table, Column: column}
	}
	row := t.Rows[rowIndex]
	for len(row) <= col {
		row = append(row, "")
	}
	row[col] = value
	t.Rows[rowIndex] = row
	f.tables[table] = t
	return nil
}

// fakeTokens is an in-memory repository.TokenStore. Setting revokeErr
// makes every revocation fail.
type fakeTokens struct {
	mu        sync.Mutex
	byHash    map[string]string
	revokeErr error
}

func newFakeTokens() *fakeTokens { return &fakeTokens{byHash: map[string]string{}} }

func (f *fakeTokens) StoreRefresh(_ context.Context, userID, hash string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byHash[hash] = userID
	return nil
}

func (f *fakeTokens) ValidateRefresh(_ context.Context, hash string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.byHash[hash]; ok {
		return id, nil
	}
	return "", repository.ErrInvalidRefresh
}

func (f *fakeTokens) RevokeByHash(_ context.Context, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revokeErr != nil {
		return f.revokeErr
	}
	delete(f.byHash, hash)
	return nil
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for h, id := range f.byHash {
		if id == userID {
			delete(f.byHash, h)
		}
	}
	return nil
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AdminCode:      "sesame",
		AccessTTLMin:   15,
		RefreshTTLDays: 1,
		BcryptCost:     4,
	}
}

func newAuthHandler(t *testing.T, store *fakeStore, tokens repository.TokenStore) *AuthHandler {
	t.Helper()
	cache := repository.NewCache(store, time.Minute, time.Minute)
	users := repository.NewUserRepo(store, cache, 4)
	return NewAuthHandler(testConfig(), users, tokens)
}

func seedUser(t *testing.T, store *fakeStore, id, password string) {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), "users", []string{id, hash, ""}))
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	tokens := newFakeTokens()
	h := newAuthHandler(t, store, tokens)
	seedUser(t, store, "alice", "secret")

	t.Run("success", func(t *testing.T) {
		c, rec := postJSON(e, `{"user_id":"alice","password":"secret"}`)
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
			Access struct {
				Token string `json:"token"`
			} `json:"access"`
			Refresh *struct {
				Token string `json:"token"`
			} `json:"refresh"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.UserID)
		assert.Equal(t, "USER", resp.Role)
		assert.NotEmpty(t, resp.Access.Token)
		require.NotNil(t, resp.Refresh)
		// The raw token goes to the client, the hash into the store.
		_, err := tokens.ValidateRefresh(context.Background(), utils.HashRefreshRaw(resp.Refresh.Token))
		assert.NoError(t, err)
	})

	t.Run("unformatted id normalizes to the same account", func(t *testing.T) {
		c, rec := postJSON(e, `{"user_id":"alice　","password":"secret"}`)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password and unknown id look the same", func(t *testing.T) {
		c1, rec1 := postJSON(e, `{"user_id":"alice","password":"wrong"}`)
		require.NoError(t, h.Login(c1))
		c2, rec2 := postJSON(e, `{"user_id":"mallory","password":"secret"}`)
		require.NoError(t, h.Login(c2))

		assert.Equal(t, http.StatusUnauthorized, rec1.Code)
		assert.Equal(t, http.StatusUnauthorized, rec2.Code)
		assert.Equal(t, rec1.Body.String(), rec2.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		c, rec := postJSON(e, `{"user_id":"","password":""}`)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminLogin(t *testing.T) {
	e := echo.New()
	h := newAuthHandler(t, newFakeStore(), newFakeTokens())

	t.Run("correct code issues admin token", func(t *testing.T) {
		c, rec := postJSON(e, `{"code":"sesame"}`)
		require.NoError(t, h.AdminLogin(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Role string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ADMIN", resp.Role)
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		c, rec := postJSON(e, `{"code":"open"}`)
		require.NoError(t, h.AdminLogin(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRefreshRotation(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	tokens := newFakeTokens()
	h := newAuthHandler(t, store, tokens)
	seedUser(t, store, "alice", "secret")

	c, rec := postJSON(e, `{"user_id":"alice","password":"secret"}`)
	require.NoError(t, h.Login(c))
	var login struct {
		Refresh struct {
			Token string `json:"token"`
		} `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	// First refresh succeeds and rotates the token.
	c2, rec2 := postJSON(e, `{"refresh_token":"`+login.Refresh.Token+`"}`)
	require.NoError(t, h.Refresh(c2))
	assert.Equal(t, http.StatusOK, rec2.Code)

	// The used token is no longer valid.
	c3, rec3 := postJSON(e, `{"refresh_token":"`+login.Refresh.Token+`"}`)
	require.NoError(t, h.Refresh(c3))
	assert.Equal(t, http.StatusUnauthorized, rec3.Code)
}

func TestRefreshFailsWhenRevokeFails(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	tokens := newFakeTokens()
	h := newAuthHandler(t, store, tokens)
	seedUser(t, store, "alice", "secret")

	c, rec := postJSON(e, `{"user_id":"alice","password":"secret"}`)
	require.NoError(t, h.Login(c))
	var login struct {
		Refresh struct {
			Token string `json:"token"`
		} `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	// With revocation broken, no new pair may be issued: otherwise the
	// old token would stay valid alongside the new one.
	tokens.revokeErr = errors.New("store down")
	c2, rec2 := postJSON(e, `{"refresh_token":"`+login.Refresh.Token+`"}`)
	require.NoError(t, h.Refresh(c2))
	assert.Equal(t, http.StatusInternalServerError, rec2.Code)

	// The original token was not consumed and works once revocation
	// recovers.
	tokens.revokeErr = nil
	c3, rec3 := postJSON(e, `{"refresh_token":"`+login.Refresh.Token+`"}`)
	require.NoError(t, h.Refresh(c3))
	assert.Equal(t, http.StatusOK, rec3.Code)
}
