package models

import "time"

// UserSession is the login session stored in Redis alongside the JWT.
type UserSession struct {
	Address      string    `json:"address" redis:"address"`
	SessionID    string    `json:"session_id" redis:"session_id"`
	CreatedAt    time.Time `json:"created_at" redis:"created_at"`
	LastAccessed time.Time `json:"last_accessed" redis:"last_accessed"`
}
