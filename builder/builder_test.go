// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package builder

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderFunc_Build(t *testing.T) {
	testCases := []struct {
		name        string
		builder     BuilderFunc[int, string]
		input       int
		expectedVal string
		expectErr   bool
	}{
		{
			name: "successfully builds value",
			builder: BuilderFunc[int, string](func(n int) (string, error) {
				return strconv.Itoa(n), nil
			}),
			input:       42,
			expectedVal: "42",
		},
		{
			name: "propagates build error",
			builder: BuilderFunc[int, string](func(n int) (string, error) {
				return "", errors.New("build failed")
			}),
			input:     1,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			val, err := tc.builder.Build(tc.input)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedVal, val)
		})
	}
}

func TestTransformResult(t *testing.T) {
	testCases := []struct {
		name               string
		builder            Builder[int, int]
		mapper             func(int) (string, error)
		expectedVal        string
		expectErr          bool
		expectMapperCalled bool
	}{
		{
			name:               "maps value successfully",
			builder:            Lift(func(n int) int { return n * 2 }),
			mapper:             func(n int) (string, error) { return fmt.Sprintf("%d", n), nil },
			expectedVal:        "42",
			expectMapperCalled: true,
		},
		{
			name: "propagates builder error",
			builder: BuilderFunc[int, int](func(int) (int, error) {
				return 0, errors.New("builder failed")
			}),
			mapper:             func(n int) (string, error) { return "should not be called", nil },
			expectErr:          true,
			expectMapperCalled: false,
		},
		{
			name:               "propagates mapper error",
			builder:            Lift(func(n int) int { return n }),
			mapper:             func(int) (string, error) { return "", errors.New("mapper failed") },
			expectErr:          true,
			expectMapperCalled: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapperCalled := false
			mapper := func(n int) (string, error) {
				mapperCalled = true
				return tc.mapper(n)
			}

			val, err := TransformResult(tc.builder, mapper).Build(21)
			require.Equal(t, tc.expectMapperCalled, mapperCalled)
			if tc.expectErr {
				require.Error(t, err)
				require.Zero(t, val)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedVal, val)
		})
	}
}

func TestTransformInput(t *testing.T) {
	t.Run("will hand the transformed input to the inner builder", func(t *testing.T) {
		inner := Lift(func(s string) string { return s + "!" })
		b := TransformInput[int, string, string](inner, func(n int) (string, error) {
			return strconv.Itoa(n), nil
		})

		val, err := b.Build(7)
		require.NoError(t, err)
		require.Equal(t, "7!", val)
	})

	t.Run("will not call the inner builder if the transform fails", func(t *testing.T) {
		called := false
		inner := BuilderFunc[string, string](func(s string) (string, error) {
			called = true
			return s, nil
		})
		transformErr := errors.New("bad input")
		b := TransformInput[int, string, string](inner, func(int) (string, error) {
			return "", transformErr
		})

		_, err := b.Build(7)
		require.ErrorIs(t, err, transformErr)
		require.False(t, called)
	})
}

func TestLaws(t *testing.T) {
	t.Run("binding an input then building equals building with the input", func(t *testing.T) {
		b := Lift(func(n int) string { return strconv.Itoa(n * n) })
		for _, n := range []int{0, 1, 2, 10, -3} {
			direct, err := b.Build(n)
			require.NoError(t, err)

			bound, err := BindInput[int, string](b, n).Build(Unit{})
			require.NoError(t, err)
			require.Equal(t, direct, bound)
		}
	})

	t.Run("transform result respects function composition", func(t *testing.T) {
		b := Lift(func(n int) int { return n + 1 })
		g := func(n int) (int, error) { return n * 3, nil }
		f := func(n int) (string, error) { return strconv.Itoa(n), nil }
		fg := func(n int) (string, error) {
			m, _ := g(n)
			return f(m)
		}

		for _, n := range []int{0, 1, 5, -8} {
			composed, err := TransformResult[int, int, string](b, fg).Build(n)
			require.NoError(t, err)

			chained, err := TransformResult[int, int, string](TransformResult[int, int, int](b, g), f).Build(n)
			require.NoError(t, err)
			require.Equal(t, composed, chained)
		}
	})

	t.Run("transform input respects function composition", func(t *testing.T) {
		b := Lift(func(s string) string { return "<" + s + ">" })
		g := func(n int) (float64, error) { return float64(n) / 2, nil }
		f := func(x float64) (string, error) { return strconv.FormatFloat(x, 'f', 1, 64), nil }
		fg := func(n int) (string, error) {
			x, _ := g(n)
			return f(x)
		}

		for _, n := range []int{0, 1, 5, -8} {
			composed, err := TransformInput[int, string, string](b, fg).Build(n)
			require.NoError(t, err)

			// g sees the input first so it is the outer transform
			chained, err := TransformInput[int, float64, string](TransformInput[float64, string, string](b, f), g).Build(n)
			require.NoError(t, err)
			require.Equal(t, composed, chained)
		}
	})
}

func TestMustBuild(t *testing.T) {
	t.Run("will return the built value", func(t *testing.T) {
		v := MustBuild[int, int](Lift(func(n int) int { return n + 1 }), 1)
		require.Equal(t, 2, v)
	})

	t.Run("will panic with a PanicError", func(t *testing.T) {
		buildErr := errors.New("build failed")
		b := BuilderFunc[int, int](func(int) (int, error) { return 0, buildErr })

		defer func() {
			r := recover()
			perr, ok := r.(PanicError)
			require.True(t, ok)
			require.ErrorIs(t, perr, buildErr)
		}()
		MustBuild[int, int](b, 1)
	})
}

func ExampleBindInput() {
	greet := Lift(func(name string) string { return "hello " + name })

	bound := BindInput[string, string](greet, "world")

	s, _ := bound.Build(Unit{})
	fmt.Println(s)
	// Output: hello world
}
