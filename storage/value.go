// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storage

import (
	"cmp"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Key is implemented by every value which can be used as a [Map] key
// or [Set] element.
type Key[K any] interface {
	Compare(K) int
}

var addressPrefixes = []string{"tz1", "tz2", "tz3", "tz4", "KT1"}

const addressLen = 36

// Address is a base58 encoded implicit account or contract address.
type Address string

// ParseAddress checks that s looks like an implicit account or
// originated contract address.
func ParseAddress(s string) (Address, error) {
	if len(s) != addressLen {
		return "", InvalidAddressError{Address: s}
	}
	for _, prefix := range addressPrefixes {
		if strings.HasPrefix(s, prefix) {
			return Address(s), nil
		}
	}
	return "", InvalidAddressError{Address: s}
}

// Compare implements the [Key] interface.
func (a Address) Compare(other Address) int {
	return strings.Compare(string(a), string(other))
}

// Nat is a natural number.
type Nat uint64

// Compare implements the [Key] interface.
func (n Nat) Compare(other Nat) int {
	return cmp.Compare(n, other)
}

// MarshalJSON implements the [json.Marshaler] interface.
// Nats are encoded as decimal strings.
func (n Nat) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(n), 10))
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (n *Nat) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*n = Nat(v)
	return nil
}

// String is a Michelson string.
type String string

// Compare implements the [Key] interface.
func (s String) Compare(other String) int {
	return strings.Compare(string(s), string(other))
}

// Bytes is a Michelson byte sequence.
type Bytes []byte

// BytesOf returns the UTF-8 bytes of s.
func BytesOf(s string) Bytes {
	return Bytes(s)
}

// MarshalJSON implements the [json.Marshaler] interface.
// Bytes are encoded as a hex string.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (b *Bytes) UnmarshalJSON(p []byte) error {
	var s string
	err := json.Unmarshal(p, &s)
	if err != nil {
		return err
	}
	v, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Unit is the single value of the Michelson unit type.
type Unit struct{}

// MarshalJSON implements the [json.Marshaler] interface.
func (Unit) MarshalJSON() ([]byte, error) {
	return []byte(`"Unit"`), nil
}

// Compare implements the [Key] interface.
func (Unit) Compare(Unit) int { return 0 }

// Pair is a Michelson pair. Pairs are encoded as a two element JSON array.
type Pair[A Key[A], B Key[B]] struct {
	Fst A
	Snd B
}

// PairOf returns the pair of a and b.
func PairOf[A Key[A], B Key[B]](a A, b B) Pair[A, B] {
	return Pair[A, B]{Fst: a, Snd: b}
}

// Compare implements the [Key] interface. Pairs are ordered
// lexicographically.
func (p Pair[A, B]) Compare(other Pair[A, B]) int {
	c := p.Fst.Compare(other.Fst)
	if c != 0 {
		return c
	}
	return p.Snd.Compare(other.Snd)
}

// MarshalJSON implements the [json.Marshaler] interface.
func (p Pair[A, B]) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Fst, p.Snd})
}

// Entry is a single key value binding of a [Map].
type Entry[K Key[K], V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// Map is an immutable Michelson map. Its entries are kept sorted by key
// so equal maps always have equal encodings.
type Map[K Key[K], V any] struct {
	entries []Entry[K, V]
}

// MapOf builds a frozen Map from entries. When a key occurs more than
// once the last binding wins.
func MapOf[K Key[K], V any](entries ...Entry[K, V]) Map[K, V] {
	sorted := make([]Entry[K, V], len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key.Compare(sorted[j].Key) < 0
	})

	out := sorted[:0]
	for _, e := range sorted {
		if n := len(out); n > 0 && out[n-1].Key.Compare(e.Key) == 0 {
			out[n-1] = e
			continue
		}
		out = append(out, e)
	}
	return Map[K, V]{entries: out}
}

// Len returns the number of entries in m.
func (m Map[K, V]) Len() int {
	return len(m.entries)
}

// Get returns the value bound to k.
func (m Map[K, V]) Get(k K) (V, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Key.Compare(k) >= 0
	})
	if i < len(m.entries) && m.entries[i].Key.Compare(k) == 0 {
		return m.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Entries returns a copy of the entries of m in key order.
func (m Map[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], len(m.entries))
	copy(out, m.entries)
	return out
}

// Put returns a new Map with k bound to v. m is left unchanged.
func (m Map[K, V]) Put(k K, v V) Map[K, V] {
	return MapOf(append(m.Entries(), Entry[K, V]{Key: k, Value: v})...)
}

// MarshalJSON implements the [json.Marshaler] interface.
func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	if m.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m.entries)
}

// Set is an immutable Michelson set kept in sorted order.
type Set[K Key[K]] struct {
	elems []K
}

// SetOf builds a frozen Set from elems. Duplicates are dropped.
func SetOf[K Key[K]](elems ...K) Set[K] {
	sorted := make([]K, len(elems))
	copy(sorted, elems)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) < 0
	})

	out := sorted[:0]
	for _, e := range sorted {
		if n := len(out); n > 0 && out[n-1].Compare(e) == 0 {
			continue
		}
		out = append(out, e)
	}
	return Set[K]{elems: out}
}

// Len returns the number of elements in s.
func (s Set[K]) Len() int {
	return len(s.elems)
}

// Contains reports whether k is an element of s.
func (s Set[K]) Contains(k K) bool {
	i := sort.Search(len(s.elems), func(i int) bool {
		return s.elems[i].Compare(k) >= 0
	})
	return i < len(s.elems) && s.elems[i].Compare(k) == 0
}

// Elements returns a copy of the elements of s in order.
func (s Set[K]) Elements() []K {
	out := make([]K, len(s.elems))
	copy(out, s.elems)
	return out
}

// MarshalJSON implements the [json.Marshaler] interface.
func (s Set[K]) MarshalJSON() ([]byte, error) {
	if s.elems == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.elems)
}

// Record is a Michelson record with named fields. It is encoded as a
// JSON object with its fields in sorted order.
type Record map[string]any
