package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weight-tracker/internal/config"
	"github.com/iliyamo/weight-tracker/internal/middleware"
	"github.com/iliyamo/weight-tracker/internal/parse"
	"github.com/iliyamo/weight-tracker/internal/repository"
	"github.com/iliyamo/weight-tracker/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens repository.TokenStore
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t repository.TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type loginReq struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}
type adminLoginReq struct {
	Code string `json:"code"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	UserID  string     `json:"user_id"`
	Role    string     `json:"role"`
	Access  tokenPart  `json:"access"`
	Refresh *tokenPart `json:"refresh,omitempty"`
}

// issuePair signs an access token and, when the token store is up, a
// refresh token. A down token store degrades to access-only sessions
// instead of failing the login.
func (h *AuthHandler) issuePair(c echo.Context, userID, role string) (*authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return nil, err
	}
	resp := &authResp{UserID: userID, Role: role, Access: tokenPart{Token: access.Token, Expires: access.Exp}}

	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return nil, err
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	err = h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp)
	switch {
	case errors.Is(err, repository.ErrTokenStoreDown):
		// access-only session
	case err != nil:
		return nil, err
	default:
		resp.Refresh = &tokenPart{Token: refresh.Raw, Expires: refresh.Exp}
	}
	return resp, nil
}

// Login verifies user credentials and returns a token pair. All
// credential failures answer the same 401 so callers cannot probe
// which ids exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id := parse.NormalizeID(req.UserID)
	if id == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id/password required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if !h.Users.VerifyCredentials(ctx, id, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	resp, err := h.issuePair(c, id, middleware.RoleUser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// AdminLogin exchanges the shared administrator passphrase for an
// ADMIN-role access token. The comparison is constant-time and there
// is no refresh token, so an admin session ends when the access token
// expires.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if subtle.ConstantTimeCompare([]byte(req.Code), []byte(h.Cfg.AdminCode)) != 1 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid code"})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, "admin", middleware.RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		UserID: "admin",
		Role:   middleware.RoleAdmin,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Refresh validates a refresh token by hash, revokes it and returns a
// fresh pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqContext(c)
	defer cancel()
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	// Rotation must invalidate the old token before a new pair goes
	// out; otherwise both would stay usable.
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refresh rotation failed"})
	}

	resp, err := h.issuePair(c, userID, middleware.RoleUser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// RefreshAccess returns a new access token without rotating the
// refresh token.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqContext(c)
	defer cancel()
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, middleware.RoleUser, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Logout revokes a single session by refresh token, or, given only a
// valid bearer token, every session of the authenticated user.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := reqContext(c)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	// No refresh token in the body: fall back to the JWT identity set
	// by the middleware and revoke everything for that user.
	uid := currentUserID(c)
	if uid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated identity plus the stored height for
// regular users, so the client can prefill the height form.
func (h *AuthHandler) Me(c echo.Context) error {
	id := currentUserID(c)
	role, _ := c.Get("role").(string)
	resp := echo.Map{"user_id": id, "role": role}

	if role == middleware.RoleUser {
		ctx, cancel := reqContext(c)
		defer cancel()
		if u, err := h.Users.GetByID(ctx, id); err == nil {
			resp["height_cm"] = u.HeightCM
		}
	}
	return c.JSON(http.StatusOK, resp)
}
