package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weight-tracker/internal/queue"
	"github.com/iliyamo/weight-tracker/internal/report"
	"github.com/iliyamo/weight-tracker/internal/repository"
	queue_publisher "github.com/iliyamo/weight-tracker/internal/service"
)

// AdminHandler exposes the passphrase-gated administrator views:
// account provisioning, the user picker list, any user's series and
// snapshot, and the aggregate views across all users.
type AdminHandler struct {
	Users   *repository.UserRepo
	Weights *repository.WeightRepo
}

func NewAdminHandler(u *repository.UserRepo, w *repository.WeightRepo) *AdminHandler {
	return &AdminHandler{Users: u, Weights: w}
}

// createUserReq mirrors the provisioning form; height is optional
// free text validated server-side.
type createUserReq struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	HeightCM string `json:"height_cm"`
}

// CreateUser provisions an account and publishes an account.created
// event. Duplicate ids (after normalization) answer 409.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	id, err := h.Users.Create(ctx, req.UserID, req.Password, req.HeightCM)
	if err != nil {
		return writeError(c, err)
	}

	ev := queue.ActivityEvent{
		Kind:   queue.KindAccountCreated,
		UserID: id,
		At:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishActivity(context.Background(), ev) }()

	return c.JSON(http.StatusCreated, echo.Map{"user_id": id})
}

// ListUsers returns every account id, sorted, for the user picker.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	users, err := h.Users.All(ctx)
	if err != nil {
		return writeError(c, err)
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.UserID)
	}
	sort.Strings(ids)
	return c.JSON(http.StatusOK, echo.Map{"users": ids})
}

// UserWeights returns one selected user's series filtered by
// ?period=. Unknown ids answer 404 so the picker and the API agree.
func (h *AdminHandler) UserWeights(c echo.Context) error {
	period, err := report.ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "period must be one of 1m, 3m, all"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	entries, err := h.Weights.ForUser(ctx, u.UserID)
	if err != nil {
		return writeError(c, err)
	}
	entries = report.FilterPeriod(entries, period, time.Now().UTC())
	return c.JSON(http.StatusOK, entriesResp(entries))
}

// UserLatest returns one selected user's latest snapshot.
func (h *AdminHandler) UserLatest(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	entries, err := h.Weights.ForUser(ctx, u.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toSnapshotResp(report.SnapshotFor(u, entries)))
}

// AllWeights returns every user's entries in one period-filtered,
// date-ascending list: the feed for the all-users chart.
func (h *AdminHandler) AllWeights(c echo.Context) error {
	period, err := report.ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "period must be one of 1m, 3m, all"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	entries, err := h.Weights.All(ctx)
	if err != nil {
		return writeError(c, err)
	}
	entries = report.FilterPeriod(entries, period, time.Now().UTC())
	return c.JSON(http.StatusOK, entriesResp(entries))
}

// AllLatest returns one snapshot per account, ordered by id: the
// administrator overview table.
func (h *AdminHandler) AllLatest(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	users, err := h.Users.All(ctx)
	if err != nil {
		return writeError(c, err)
	}
	entries, err := h.Weights.All(ctx)
	if err != nil {
		return writeError(c, err)
	}
	snaps := report.Snapshots(users, entries)
	out := make([]snapshotResp, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, toSnapshotResp(s))
	}
	return c.JSON(http.StatusOK, out)
}
