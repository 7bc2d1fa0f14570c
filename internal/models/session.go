package models

import "time"

// Session binds an opaque token to a user. The token itself is the session ID;
// it is never derivable from the user or guessable by other clients.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
