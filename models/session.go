package models

import "time"

// Session binds a cookie token to a user id for its lifetime.
type Session struct {
	Token     string    `json:"session_token"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
