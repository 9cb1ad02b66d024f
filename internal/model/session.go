package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionAbandoned SessionStatus = "abandoned"
)

// Session is the anonymous, time-boxed holder of simulator responses prior to
// account creation. Deleted once migrated into a Client.
type Session struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	Token     string        `json:"token" bson:"token"`
	Status    SessionStatus `json:"status" bson:"status"`
	Completed bool          `json:"completed" bson:"completed"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time     `json:"expiresAt" bson:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
