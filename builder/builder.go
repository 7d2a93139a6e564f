// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package builder provides a small functional algebra for composing pure
// producers of values.
//
// The package is built around [Builder], a stateless function value from an
// input I to an output O. Builders never mutate one another; every combinator
// returns a new Builder.
//
// # Combinators
//
//   - [Lift]: turn a plain function into a Builder
//   - [TransformResult]: post-process the output of a Builder
//   - [TransformInput]: pre-process the input handed to a Builder
//   - [BindInput]: partially apply a Builder to its input
//   - [Fragments.With]: merge the outputs of two fragment Builders
//
// # Fragments
//
// A [Fragment] is a partial record keyed by top-level names. Two fragment
// builders sharing the same input can be merged with [With] as long as their
// key sets are disjoint. Builders with different inputs are first projected
// from a common parameter type with [TransformInput]:
//
//	admin := builder.TransformInput(adminStorage, func(p Params) (AdminParams, error) {
//	    return AdminParams{Owner: p.Owner}, nil
//	})
//	storage := builder.From(assets).With(admin)
package builder

import "fmt"

// Builder represents anything which can produce an O from an I.
type Builder[I, O any] interface {
	Build(I) (O, error)
}

// BuilderFunc is a functional implementation of the [Builder] interface.
type BuilderFunc[I, O any] func(I) (O, error)

// Build implements the [Builder] interface.
func (f BuilderFunc[I, O]) Build(in I) (O, error) {
	return f(in)
}

// Unit is the input of a Builder which needs no input.
type Unit struct{}

// Lift returns a [Builder] which applies f to its input and never fails.
func Lift[I, O any](f func(I) O) BuilderFunc[I, O] {
	return func(in I) (O, error) {
		return f(in), nil
	}
}

// Const returns a [Builder] which ignores its input and always returns v.
func Const[I, O any](v O) BuilderFunc[I, O] {
	return func(I) (O, error) {
		return v, nil
	}
}

// TransformResult returns a [Builder] which applies f to the output of b.
// f is never called if b fails.
func TransformResult[I, O, O2 any](b Builder[I, O], f func(O) (O2, error)) BuilderFunc[I, O2] {
	return func(in I) (O2, error) {
		out, err := b.Build(in)
		if err != nil {
			var zero O2
			return zero, err
		}
		return f(out)
	}
}

// TransformInput returns a [Builder] which applies f to its input before
// handing the result to b. b is never called if f fails.
func TransformInput[I, I2, O any](b Builder[I2, O], f func(I) (I2, error)) BuilderFunc[I, O] {
	return func(in I) (O, error) {
		in2, err := f(in)
		if err != nil {
			var zero O
			return zero, err
		}
		return b.Build(in2)
	}
}

// BindInput partially applies b to in. The returned [Builder] ignores
// its own input.
func BindInput[I, O any](b Builder[I, O], in I) BuilderFunc[Unit, O] {
	return func(Unit) (O, error) {
		return b.Build(in)
	}
}

// PanicError is the value passed to panic by [MustBuild].
type PanicError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e PanicError) Error() string {
	return fmt.Sprintf("builder: failed to build: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e PanicError) Unwrap() error {
	return e.Cause
}

// MustBuild builds b and panics with a [PanicError] if it fails.
// It is meant for builders whose failure is a programming error.
func MustBuild[I, O any](b Builder[I, O], in I) O {
	out, err := b.Build(in)
	if err != nil {
		panic(PanicError{Cause: err})
	}
	return out
}
