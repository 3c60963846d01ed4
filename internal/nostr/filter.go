package nostr

// Filter selects events by kind, author, identity and tag references.
// Zero-valued fields do not constrain. A filter with no constraints
// matches everything; callers decide whether that is sensible.
type Filter struct {
	IDs     []string
	Kinds   []int
	Authors []string
	// Tags maps a tag name to accepted first values, e.g.
	// {"e": {goalID}} or {"d": {taskID}}.
	Tags  map[string][]string
	Since int64 // inclusive lower bound on created_at, 0 = unbounded
	Until int64 // inclusive upper bound on created_at, 0 = unbounded
	Limit int   // 0 = no limit
}

// Matches reports whether the event satisfies every constraint of the
// filter. Limit is a result-set bound, not a per-event predicate, and is
// ignored here.
func (f Filter) Matches(e Event) bool {
	if len(f.IDs) > 0 && !containsString(f.IDs, e.ID) {
		return false
	}
	if len(f.Kinds) > 0 && !containsInt(f.Kinds, e.Kind) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, e.PubKey) {
		return false
	}
	if f.Since > 0 && e.CreatedAt < f.Since {
		return false
	}
	if f.Until > 0 && e.CreatedAt > f.Until {
		return false
	}
	for name, accepted := range f.Tags {
		if !matchesTag(e.Tags, name, accepted) {
			return false
		}
	}
	return true
}

func matchesTag(tags Tags, name string, accepted []string) bool {
	for _, t := range tags.All(name) {
		if containsString(accepted, t.Value()) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsInt(haystack []int, needle int) bool {
	for _, n := range haystack {
		if n == needle {
			return true
		}
	}
	return false
}
