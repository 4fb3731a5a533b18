package fixture

import "strings"

// Selection identifies the subset of fixture names an operation applies to.
// The zero value selects all known fixtures.
type Selection struct {
	names []string
}

// All returns a selection covering every known fixture.
func All() Selection {
	return Selection{}
}

// Named returns a selection covering exactly the given names.
func Named(names ...string) Selection {
	if len(names) == 0 {
		return All()
	}
	out := make([]string, len(names))
	copy(out, names)
	return Selection{names: out}
}

// Parse builds a selection from a comma-separated list of names. Empty input
// and blank entries are ignored; an input with no usable names selects all.
func Parse(s string) Selection {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return Selection{names: names}
}

// IsAll reports whether the selection covers every known fixture.
func (s Selection) IsAll() bool {
	return len(s.names) == 0
}

// Names returns the selected names, nil for an all-selection.
func (s Selection) Names() []string {
	return s.names
}

// String renders the selection for logging.
func (s Selection) String() string {
	if s.IsAll() {
		return "all"
	}
	return strings.Join(s.names, ",")
}
