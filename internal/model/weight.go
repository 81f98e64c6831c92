package model

import "time"

// WeightEntry is one dated measurement belonging to an account, read
// from the `weights` sheet. Entries are append-only: there is no
// update or delete. Several entries for the same user and date are
// allowed; "latest" is decided by date with ties broken by sheet
// insertion order.
//
// Fields:
//  UserID   – owner of the measurement (normalized id).
//  Date     – calendar date composed from the year/month/day columns,
//             stored as midnight UTC.
//  WeightKG – measured weight in kilograms, constrained to [30,200]
//             at write time.
type WeightEntry struct {
	UserID   string    // weights.user_id
	Date     time.Time // weights.year + month + day
	WeightKG float64   // weights.weight
}
