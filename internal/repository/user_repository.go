package repository

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/iliyamo/weight-tracker/internal/model"
	"github.com/iliyamo/weight-tracker/internal/parse"
	"github.com/iliyamo/weight-tracker/internal/sheet"
	"github.com/iliyamo/weight-tracker/internal/utils"
)

// UserRepo reads accounts through the cache and writes them through
// the gateway.
type UserRepo struct {
	Store      sheet.Store
	Cache      *Cache
	BcryptCost int
}

func NewUserRepo(store sheet.Store, cache *Cache, bcryptCost int) *UserRepo {
	return &UserRepo{Store: store, Cache: cache, BcryptCost: bcryptCost}
}

// All returns every account from the cached projection.
func (r *UserRepo) All(ctx context.Context) ([]model.UserAccount, error) {
	return r.Cache.Users(ctx)
}

// GetByID looks up one account by normalized id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.UserAccount, error) {
	id = parse.NormalizeID(id)
	users, err := r.Cache.Users(ctx)
	if err != nil {
		return model.UserAccount{}, err
	}
	for _, u := range users {
		if u.UserID == id {
			return u, nil
		}
	}
	return model.UserAccount{}, ErrUserNotFound
}

// VerifyCredentials checks a plaintext password against the stored
// hash. Unknown id, empty stored hash and wrong password all return
// false with no distinction, so callers cannot probe which ids exist.
// Store errors also collapse to false: login just fails.
func (r *UserRepo) VerifyCredentials(ctx context.Context, id, password string) bool {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return false
	}
	return utils.VerifyPassword(u.PasswordHash, password)
}

// Create provisions an account: normalize id, reject empty id or
// password, reject duplicates against a fresh read of the sheet, hash
// the password and append the row positionally per the current
// header. An optional height string is validated strictly here
// because this is a write; reads stay lenient. Returns the
// normalized id.
func (r *UserRepo) Create(ctx context.Context, id, password, height string) (string, error) {
	id = parse.NormalizeID(id)
	if id == "" || password == "" {
		return "", validationf("user_id and password are required")
	}
	heightVal := ""
	if s := strings.TrimSpace(height); s != "" {
		// ParseFloat accepts "NaN" and "Inf"; neither is a height.
		h, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
			return "", validationf("height_cm must be a positive number")
		}
		heightVal = strconv.FormatFloat(h, 'f', -1, 64)
	}

	t, err := r.Store.ReadAll(ctx, usersTable)
	if err != nil {
		return "", err
	}
	for _, u := range parse.Users(t) {
		if u.UserID == id {
			return "", ErrUserExists
		}
	}

	hash, err := utils.HashPassword(password, r.BcryptCost)
	if err != nil {
		return "", err
	}
	enc := sheet.NewRowEncoder(usersTable, t.Header)
	if err := enc.Require("user_id", "password_hash"); err != nil {
		return "", err
	}
	row := enc.Encode(map[string]string{
		"user_id":       id,
		"password_hash": hash,
		"height_cm":     heightVal,
	})
	if err := r.Store.Append(ctx, usersTable, row); err != nil {
		return "", err
	}
	r.Cache.Invalidate()
	return id, nil
}

// UpdateHeight writes one height_cm cell for the account matching the
// normalized id. The row is located against a fresh read so the
// index reflects the sheet as it is now.
func (r *UserRepo) UpdateHeight(ctx context.Context, id string, heightCM float64) error {
	id = parse.NormalizeID(id)
	if math.IsNaN(heightCM) || math.IsInf(heightCM, 0) || heightCM <= 0 {
		return validationf("height_cm must be a positive number")
	}
	t, err := r.Store.ReadAll(ctx, usersTable)
	if err != nil {
		return err
	}
	rowIndex := -1
	for i, row := range t.Rows {
		if parse.NormalizeID(t.Cell(row, "user_id")) == id {
			rowIndex = i
			break
		}
	}
	if rowIndex < 0 {
		return ErrUserNotFound
	}
	value := strconv.FormatFloat(heightCM, 'f', -1, 64)
	if err := r.Store.UpdateCell(ctx, usersTable, rowIndex, "height_cm", value); err != nil {
		return err
	}
	r.Cache.Invalidate()
	return nil
}
