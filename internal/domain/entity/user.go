package entity

import "time"

// User is the aggregate root for the account domain.
// Password holds the bcrypt digest, never the plaintext; handlers must not
// serialize it.
type User struct {
	ID        string
	FullName  string
	Email     string
	Password  string
	CreatedOn time.Time
}
