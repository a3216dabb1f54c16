package domain

// User is the domain model for a registered account. The password is
// only ever held as a bcrypt hash.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
