package domain

// Aggregator keeps a deduplicated, quantity-counted live set of scanned items
// in first-seen order. It does no locking: callers serialize access.
type Aggregator struct {
	index map[string]int
	items []Item
}

func NewAggregator() *Aggregator {
	return &Aggregator{index: map[string]int{}}
}

// Observe counts one observation. Observations without a payload are ignored.
func (a *Aggregator) Observe(observation Observation) {
	a.add(observation.Payload, observation.Category, 1)
}

// SnapshotAndClear hands the live set over as a carry-over and empties it.
func (a *Aggregator) SnapshotAndClear() CarryOver {
	carryOver := CarryOver{Entries: a.entries()}
	a.clear()

	return carryOver
}

// Merge folds a carry-over back into the live set with the same rule as
// Observe, then clears the carry-over.
func (a *Aggregator) Merge(carryOver *CarryOver) {
	if carryOver == nil {
		return
	}

	for _, entry := range carryOver.Entries {
		a.add(entry.Payload, entry.Category, entry.Quantity)
	}
	carryOver.Clear()
}

func (a *Aggregator) Reset() {
	a.clear()
}

// Materialize returns a copy of the live items in first-seen order.
func (a *Aggregator) Materialize() []Item {
	items := make([]Item, len(a.items))
	copy(items, a.items)
	return items
}

// Entries returns the live set in carry-over form without clearing it.
func (a *Aggregator) Entries() []CarryOverEntry {
	return a.entries()
}

func (a *Aggregator) Len() int {
	return len(a.items)
}

// Total returns the sum of all item quantities.
func (a *Aggregator) Total() int {
	total := 0
	for _, item := range a.items {
		total += item.Quantity
	}

	return total
}

func (a *Aggregator) add(payload, category string, quantity int) {
	if payload == "" || quantity < 1 {
		return
	}
	if a.index == nil {
		a.index = map[string]int{}
	}

	if i, ok := a.index[payload]; ok {
		a.items[i].Quantity += quantity
		return
	}

	a.index[payload] = len(a.items)
	a.items = append(a.items, Item{Key: payload, Category: category, Quantity: quantity})
}

func (a *Aggregator) entries() []CarryOverEntry {
	if len(a.items) == 0 {
		return nil
	}

	entries := make([]CarryOverEntry, 0, len(a.items))
	for _, item := range a.items {
		entries = append(entries, CarryOverEntry{
			Payload:  item.Key,
			Category: item.Category,
			Quantity: item.Quantity,
		})
	}

	return entries
}

func (a *Aggregator) clear() {
	a.items = nil
	a.index = map[string]int{}
}
