package domain

// SymbologyFilter restricts which categories are counted. The zero value
// allows everything.
type SymbologyFilter struct {
	allowed map[string]struct{}
}

func NewSymbologyFilter(names []string) SymbologyFilter {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		normalized := NormalizeCategory(name)
		if normalized == UnknownCategory {
			continue
		}
		allowed[normalized] = struct{}{}
	}
	if len(allowed) == 0 {
		return SymbologyFilter{}
	}

	return SymbologyFilter{allowed: allowed}
}

func (f SymbologyFilter) Allows(category string) bool {
	if len(f.allowed) == 0 {
		return true
	}

	_, ok := f.allowed[NormalizeCategory(category)]
	return ok
}
