package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Session is the persisted form of a tally: the live set in compact form and
// whatever carry-over is pending from the last suspend.
type Session struct {
	ID        SessionID
	Live      []CarryOverEntry
	CarryOver CarryOver
	UpdatedAt time.Time
}
