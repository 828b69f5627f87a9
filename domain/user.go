package domain

// User holds the credential record for a registered account. The password
// hash never leaves the process.
type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
