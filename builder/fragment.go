// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package builder

import (
	"fmt"
	"sort"
)

// Fragment is a partial record keyed by top-level names.
type Fragment map[string]any

// Keys returns the keys of f in sorted order.
func (f Fragment) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of f.
func (f Fragment) Clone() Fragment {
	c := make(Fragment, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

// DuplicateFragmentKeyError occurs when two merged fragments share a key.
// Fragment keys are fixed by convention, so this always indicates a
// programming error.
type DuplicateFragmentKeyError struct {
	Key string
}

// Error implements the [builtin.error] interface.
func (e DuplicateFragmentKeyError) Error() string {
	return fmt.Sprintf("fragments share the top-level key: %s", e.Key)
}

// Merge returns the disjoint union of fs. The inputs are never modified.
func Merge(fs ...Fragment) (Fragment, error) {
	n := 0
	for _, f := range fs {
		n += len(f)
	}

	out := make(Fragment, n)
	for _, f := range fs {
		for _, k := range f.Keys() {
			if _, exists := out[k]; exists {
				return nil, DuplicateFragmentKeyError{Key: k}
			}
			out[k] = f[k]
		}
	}
	return out, nil
}

// Fragments is a fragment [Builder] with fluent composition methods.
type Fragments[I any] struct {
	b Builder[I, Fragment]
}

// From wraps b so it can be composed fluently.
func From[I any](b Builder[I, Fragment]) Fragments[I] {
	return Fragments[I]{b: b}
}

// Func wraps f so it can be composed fluently.
func Func[I any](f func(I) (Fragment, error)) Fragments[I] {
	return Fragments[I]{b: BuilderFunc[I, Fragment](f)}
}

// Empty returns a fragment builder which always produces an empty fragment.
// It is the identity element of [Fragments.With].
func Empty[I any]() Fragments[I] {
	return Func(func(I) (Fragment, error) {
		return Fragment{}, nil
	})
}

// Build implements the [Builder] interface.
func (fs Fragments[I]) Build(in I) (Fragment, error) {
	if fs.b == nil {
		return Fragment{}, nil
	}
	return fs.b.Build(in)
}

// With returns a builder whose output is the disjoint union of the outputs
// of fs and other for the same input.
func (fs Fragments[I]) With(other Builder[I, Fragment]) Fragments[I] {
	return From[I](With[I](fs, other))
}

// WithFunc is shorthand for fs.With(Lift(f)).
func (fs Fragments[I]) WithFunc(f func(I) Fragment) Fragments[I] {
	return fs.With(Lift(f))
}

// Nest returns a builder which places the output of fs under key.
func (fs Fragments[I]) Nest(key string) Fragments[I] {
	return From[I](TransformResult[I, Fragment, Fragment](fs, func(f Fragment) (Fragment, error) {
		return Fragment{key: f}, nil
	}))
}

// With returns a [Builder] whose output is the disjoint union of the outputs
// of a and b for the same input. Shared keys result in a [DuplicateFragmentKeyError].
func With[I any](a, b Builder[I, Fragment]) BuilderFunc[I, Fragment] {
	return func(in I) (Fragment, error) {
		fa, err := a.Build(in)
		if err != nil {
			return nil, err
		}
		fb, err := b.Build(in)
		if err != nil {
			return nil, err
		}
		return Merge(fa, fb)
	}
}

// Nested returns a [Builder] which places the output of b under key.
func Nested[I, O any](key string, b Builder[I, O]) BuilderFunc[I, Fragment] {
	return TransformResult[I, O, Fragment](b, func(v O) (Fragment, error) {
		return Fragment{key: v}, nil
	})
}
