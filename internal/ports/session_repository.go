package ports

import (
	"context"

	"github.com/bnema/scantally/internal/domain"
)

// SessionRepository persists the tally between process lifetimes. Load
// returns domain.ErrSessionNotFound when nothing has been saved yet.
//
// Update is a read-modify-write: fn receives the stored session (zero when
// none exists) and the result is written only when fn reports a change.
type SessionRepository interface {
	Load(ctx context.Context) (domain.Session, error)
	Update(ctx context.Context, fn func(*domain.Session) (bool, error)) error
}
