package account

import "time"

// Account is a registered identity with credentials and a profile
// reference. Password always holds a bcrypt hash, never plain text.
type Account struct {
	ID             int64
	Name           string
	Surname        string
	Age            int32
	NationalID     string
	Email          string
	Password       string
	Active         bool
	ProfileID      *int64
	CreatedAt      time.Time
	LastModifiedAt time.Time
}
