package model

// UserAccount represents an application user record as stored in the
// `users` sheet. Accounts are provisioned by an administrator; the
// height is optional and may be filled in later by the owning user.
// Ids are stored normalized (full-width spaces and line breaks
// collapsed, surrounding whitespace trimmed) and compared
// case-sensitively after normalization.
//
// Fields:
//  UserID       – unique normalized identifier.
//  PasswordHash – bcrypt hash of the account password; never empty for
//                 a valid account.
//  HeightCM     – height in centimetres.  Nil means "unset", which is
//                 distinct from zero.
type UserAccount struct {
	UserID       string   // users.user_id
	PasswordHash string   // users.password_hash
	HeightCM     *float64 // users.height_cm (nullable)
}
