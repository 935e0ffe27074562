package kernel

import (
	"sort"
)

// KeySet is an immutable set of product keys. It is the unit of account for
// the fulfillment flow: every stage decision is expressed as a partition of a
// KeySet into an accepted subset and its complement.
//
// All operations return new sets; a KeySet is never mutated after
// construction, which makes it safe to share between components. The zero
// value is a valid empty set.
type KeySet struct {
	keys map[ProductKey]struct{}
}

// NewKeySet builds a set from the given keys. Duplicates and empty keys are
// dropped.
func NewKeySet(keys ...ProductKey) KeySet {
	s := KeySet{keys: make(map[ProductKey]struct{}, len(keys))}
	for _, k := range keys {
		if k == "" {
			continue
		}
		s.keys[k] = struct{}{}
	}
	return s
}

// KeySetFromStrings builds a set from raw string keys, typically read back
// from persistence.
func KeySetFromStrings(raw []string) KeySet {
	keys := make([]ProductKey, 0, len(raw))
	for _, r := range raw {
		keys = append(keys, ProductKey(r))
	}
	return NewKeySet(keys...)
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	return len(s.keys)
}

// IsEmpty reports whether the set has no keys.
func (s KeySet) IsEmpty() bool {
	return len(s.keys) == 0
}

// Contains reports whether the key is a member of the set.
func (s KeySet) Contains(k ProductKey) bool {
	_, ok := s.keys[k]
	return ok
}

// Union returns a new set holding every key present in either set.
func (s KeySet) Union(other KeySet) KeySet {
	out := KeySet{keys: make(map[ProductKey]struct{}, len(s.keys)+len(other.keys))}
	for k := range s.keys {
		out.keys[k] = struct{}{}
	}
	for k := range other.keys {
		out.keys[k] = struct{}{}
	}
	return out
}

// Intersect returns a new set holding only the keys present in both sets.
func (s KeySet) Intersect(other KeySet) KeySet {
	out := KeySet{keys: make(map[ProductKey]struct{})}
	for k := range s.keys {
		if other.Contains(k) {
			out.keys[k] = struct{}{}
		}
	}
	return out
}

// Subtract returns a new set holding the keys of s that are not in other.
func (s KeySet) Subtract(other KeySet) KeySet {
	out := KeySet{keys: make(map[ProductKey]struct{})}
	for k := range s.keys {
		if !other.Contains(k) {
			out.keys[k] = struct{}{}
		}
	}
	return out
}

// IsSubsetOf reports whether every key of s is also in other.
func (s KeySet) IsSubsetOf(other KeySet) bool {
	for k := range s.keys {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}

// IsDisjointFrom reports whether the two sets share no keys.
func (s KeySet) IsDisjointFrom(other KeySet) bool {
	for k := range s.keys {
		if other.Contains(k) {
			return false
		}
	}
	return true
}

// IsEqual reports whether both sets hold exactly the same keys.
func (s KeySet) IsEqual(other KeySet) bool {
	return len(s.keys) == len(other.keys) && s.IsSubsetOf(other)
}

// Sorted returns the keys in lexicographic order. The slice is freshly
// allocated on every call.
func (s KeySet) Sorted() []ProductKey {
	out := make([]ProductKey, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the keys in lexicographic order as raw strings, the form
// used for persistence and transport.
func (s KeySet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, k := range sorted {
		out[i] = string(k)
	}
	return out
}
