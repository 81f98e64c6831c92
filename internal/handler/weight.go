package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weight-tracker/internal/model"
	"github.com/iliyamo/weight-tracker/internal/queue"
	"github.com/iliyamo/weight-tracker/internal/report"
	"github.com/iliyamo/weight-tracker/internal/repository"
	queue_publisher "github.com/iliyamo/weight-tracker/internal/service"
)

// WeightHandler serves the authenticated user's own measurements.
type WeightHandler struct {
	Weights *repository.WeightRepo
	Users   *repository.UserRepo
}

func NewWeightHandler(w *repository.WeightRepo, u *repository.UserRepo) *WeightHandler {
	return &WeightHandler{Weights: w, Users: u}
}

// ----- DTOs -----

// addWeightReq mirrors the measurement form: the date components and
// the weight arrive as the text the user typed, and validation
// happens server-side so the error message can be shown inline.
type addWeightReq struct {
	Year   string `json:"year"`
	Month  string `json:"month"`
	Day    string `json:"day"`
	Weight string `json:"weight"`
}

type entryResp struct {
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
}

func entriesResp(entries []model.WeightEntry) []entryResp {
	out := make([]entryResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResp{UserID: e.UserID, Date: e.Date.Format(dateLayout), WeightKG: e.WeightKG})
	}
	return out
}

type snapshotResp struct {
	UserID   string   `json:"user_id"`
	Date     *string  `json:"date"`
	WeightKG *float64 `json:"weight_kg"`
	HeightCM *float64 `json:"height_cm"`
	BMI      string   `json:"bmi"`
}

func toSnapshotResp(s report.Snapshot) snapshotResp {
	out := snapshotResp{UserID: s.UserID, WeightKG: s.WeightKG, HeightCM: s.HeightCM, BMI: s.BMI.String()}
	if s.Date != nil {
		d := s.Date.Format(dateLayout)
		out.Date = &d
	}
	return out
}

// List returns the caller's entries filtered by the ?period= window
// (1m, 3m, all), ascending by date.
func (h *WeightHandler) List(c echo.Context) error {
	period, err := report.ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "period must be one of 1m, 3m, all"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	entries, err := h.Weights.ForUser(ctx, currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	entries = report.FilterPeriod(entries, period, time.Now().UTC())
	return c.JSON(http.StatusOK, entriesResp(entries))
}

// Create validates and appends one measurement for the caller, then
// publishes a weight.recorded event. Event delivery is best-effort
// and never fails the request.
func (h *WeightHandler) Create(c echo.Context) error {
	var req addWeightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	entry, err := h.Weights.Add(ctx, currentUserID(c), req.Year, req.Month, req.Day, req.Weight)
	if err != nil {
		return writeError(c, err)
	}

	ev := queue.ActivityEvent{
		Kind:     queue.KindWeightRecorded,
		UserID:   entry.UserID,
		Date:     entry.Date.Format(dateLayout),
		WeightKG: entry.WeightKG,
		At:       time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishActivity(context.Background(), ev) }()

	return c.JSON(http.StatusCreated, entryResp{
		UserID:   entry.UserID,
		Date:     entry.Date.Format(dateLayout),
		WeightKG: entry.WeightKG,
	})
}

// Latest returns the caller's latest snapshot: most recent date and
// weight, stored height and the BMI derived from them.
func (h *WeightHandler) Latest(c echo.Context) error {
	id := currentUserID(c)
	ctx, cancel := reqContext(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	entries, err := h.Weights.ForUser(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toSnapshotResp(report.SnapshotFor(u, entries)))
}
