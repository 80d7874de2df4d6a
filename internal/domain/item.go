package domain

type Item struct {
	Key      string
	Category string
	Quantity int
}

// CarryOverEntry is the compact form of an item held across a suspend/resume cycle.
type CarryOverEntry struct {
	Payload  string
	Category string
	Quantity int
}

// CarryOver preserves counted progress while scanning is suspended.
type CarryOver struct {
	Entries []CarryOverEntry
}

func (c *CarryOver) Append(other CarryOver) {
	if c == nil {
		return
	}

	c.Entries = append(c.Entries, other.Entries...)
}

func (c *CarryOver) Clear() {
	if c == nil {
		return
	}

	c.Entries = nil
}

func (c CarryOver) Empty() bool {
	return len(c.Entries) == 0
}

// Total returns the number of observations the carry-over stands for.
func (c CarryOver) Total() int {
	total := 0
	for _, entry := range c.Entries {
		if entry.Quantity > 0 {
			total += entry.Quantity
		}
	}

	return total
}

func (c CarryOver) Clone() CarryOver {
	if len(c.Entries) == 0 {
		return CarryOver{}
	}

	entries := make([]CarryOverEntry, len(c.Entries))
	copy(entries, c.Entries)
	return CarryOver{Entries: entries}
}
