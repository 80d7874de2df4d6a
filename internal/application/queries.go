package application

import (
	"sort"
	"time"

	"github.com/bnema/scantally/internal/domain"
)

type ItemView struct {
	Key       string
	Category  string
	Quantity  int
	ExpiresAt *time.Time `json:",omitempty"`
	Expired   bool
}

type Listing struct {
	SessionID        domain.SessionID
	Items            []ItemView
	Distinct         int
	Total            int
	PendingCarryOver int
}

// SortItems returns a sorted copy for presentation; first-seen order is kept
// for SortFirstSeen and ties.
func SortItems(items []ItemView, order SortOrder) []ItemView {
	sorted := make([]ItemView, len(items))
	copy(sorted, items)

	switch order {
	case SortQuantity:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Quantity > sorted[j].Quantity
		})
	case SortKey:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Key < sorted[j].Key
		})
	}

	return sorted
}

func itemViews(items []domain.Item, now time.Time) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		view := ItemView{
			Key:      item.Key,
			Category: item.Category,
			Quantity: item.Quantity,
		}
		if expiry, ok := domain.ExpiryDate(item.Key); ok {
			view.ExpiresAt = &expiry
			view.Expired = domain.IsExpired(expiry, now)
		}
		views = append(views, view)
	}

	return views
}
