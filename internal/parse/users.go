package parse

import (
	"strconv"
	"strings"

	"github.com/iliyamo/weight-tracker/internal/model"
	"github.com/iliyamo/weight-tracker/internal/sheet"
)

// Users converts the raw `users` table into typed accounts. An empty
// table yields an empty slice. A missing height_cm column means every
// height is unset, not an error; so does a height cell that fails to
// parse as a number. Rows whose id normalizes to empty (blank filler
// rows in the sheet) are skipped.
func Users(t sheet.Table) []model.UserAccount {
	users := make([]model.UserAccount, 0, len(t.Rows))
	for _, row := range t.Rows {
		id := NormalizeID(t.Cell(row, "user_id"))
		if id == "" {
			continue
		}
		u := model.UserAccount{
			UserID:       id,
			PasswordHash: strings.TrimSpace(t.Cell(row, "password_hash")),
		}
		if v := strings.TrimSpace(t.Cell(row, "height_cm")); v != "" {
			if h, err := strconv.ParseFloat(v, 64); err == nil {
				u.HeightCM = &h
			}
		}
		users = append(users, u)
	}
	return users
}
