package application

import (
	"fmt"

	"github.com/bnema/scantally/internal/domain"
)

// Intent is how the user leaves the item list.
type Intent string

const (
	IntentRestart Intent = "restart"
	IntentResume  Intent = "resume"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentRestart, IntentResume:
		return true
	default:
		return false
	}
}

func ParseIntent(raw string) (Intent, error) {
	intent := Intent(raw)
	if !intent.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidIntent, raw)
	}

	return intent, nil
}

type SortOrder string

const (
	SortFirstSeen SortOrder = "first-seen"
	SortQuantity  SortOrder = "quantity"
	SortKey       SortOrder = "key"
)

func (o SortOrder) Valid() bool {
	switch o {
	case SortFirstSeen, SortQuantity, SortKey:
		return true
	default:
		return false
	}
}
