package toolchain

// FlagSet is a set of command-line flags that remembers insertion order.
// Adding a flag that is already present is a no-op, so flags contributed by
// several sources (environment, build type table, platform extras) appear
// once. Callers may rely on membership only; the order is kept solely to make
// the generated build file reproducible.
type FlagSet struct {
	items []string
	seen  map[string]struct{}
}

// NewFlagSet returns a set holding flags.
func NewFlagSet(flags ...string) *FlagSet {
	s := &FlagSet{seen: make(map[string]struct{}, len(flags))}
	s.Add(flags...)
	return s
}

// Add inserts flags that are not yet present. Empty strings are ignored.
func (s *FlagSet) Add(flags ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, f := range flags {
		if f == "" {
			continue
		}
		if _, ok := s.seen[f]; ok {
			continue
		}
		s.seen[f] = struct{}{}
		s.items = append(s.items, f)
	}
}

// Union adds every list to the set and returns it.
func (s *FlagSet) Union(lists ...[]string) *FlagSet {
	for _, l := range lists {
		s.Add(l...)
	}
	return s
}

// Contains reports whether flag is in the set.
func (s *FlagSet) Contains(flag string) bool {
	_, ok := s.seen[flag]
	return ok
}

// Len returns the number of distinct flags.
func (s *FlagSet) Len() int { return len(s.items) }

// List returns a copy of the flags.
func (s *FlagSet) List() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Union returns the set union of lists as a slice.
func Union(lists ...[]string) []string {
	return NewFlagSet().Union(lists...).List()
}
