// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package builder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Name  string
	Count int
	Flag  bool
}

func keyed(key string, f func(params) any) Fragments[params] {
	return Func(func(p params) (Fragment, error) {
		return Fragment{key: f(p)}, nil
	})
}

var (
	fragA = keyed("a", func(p params) any { return p.Name })
	fragB = keyed("b", func(p params) any { return p.Count })
	fragC = keyed("c", func(p params) any { return p.Flag })
)

func TestWith(t *testing.T) {
	inputs := []params{
		{},
		{Name: "token", Count: 3, Flag: true},
		{Name: "other", Count: -1},
	}

	t.Run("will be associative", func(t *testing.T) {
		for _, in := range inputs {
			left, err := fragA.With(fragB).With(fragC).Build(in)
			if !assert.NoError(t, err) {
				return
			}

			right, err := fragA.With(fragB.With(fragC)).Build(in)
			if !assert.NoError(t, err) {
				return
			}
			if !assert.Equal(t, left, right) {
				return
			}
		}
	})

	t.Run("will be commutative for disjoint keys", func(t *testing.T) {
		for _, in := range inputs {
			ab, err := fragA.With(fragB).Build(in)
			if !assert.NoError(t, err) {
				return
			}

			ba, err := fragB.With(fragA).Build(in)
			if !assert.NoError(t, err) {
				return
			}
			if !assert.Equal(t, ab, ba) {
				return
			}
		}
	})

	t.Run("will treat the empty builder as identity", func(t *testing.T) {
		in := inputs[1]

		plain, err := fragA.Build(in)
		require.NoError(t, err)

		left, err := Empty[params]().With(fragA).Build(in)
		require.NoError(t, err)

		right, err := fragA.With(Empty[params]()).Build(in)
		require.NoError(t, err)

		require.Equal(t, plain, left)
		require.Equal(t, plain, right)
	})

	t.Run("will return a DuplicateFragmentKeyError on shared keys", func(t *testing.T) {
		other := keyed("b", func(params) any { return "clash" })

		_, err := fragA.With(fragB).With(other).Build(inputs[0])

		var derr DuplicateFragmentKeyError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, "b", derr.Key)
	})

	t.Run("will propagate builder errors", func(t *testing.T) {
		buildErr := errors.New("failed")
		failing := Func(func(params) (Fragment, error) { return nil, buildErr })

		_, err := fragA.With(failing).Build(inputs[0])
		require.ErrorIs(t, err, buildErr)

		_, err = From[params](failing).With(fragA).Build(inputs[0])
		require.ErrorIs(t, err, buildErr)
	})

	t.Run("will not modify the composed builders", func(t *testing.T) {
		ab := fragA.With(fragB)
		_ = ab.With(fragC)

		f, err := ab.Build(inputs[1])
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, f.Keys())
	})
}

func TestFragments_WithFunc(t *testing.T) {
	f, err := fragA.WithFunc(func(p params) Fragment {
		return Fragment{"count": p.Count * 2}
	}).Build(params{Name: "x", Count: 2})

	require.NoError(t, err)
	require.Equal(t, Fragment{"a": "x", "count": 4}, f)
}

func TestFragments_Nest(t *testing.T) {
	f, err := fragA.With(fragB).Nest("outer").Build(params{Name: "x", Count: 1})

	require.NoError(t, err)
	require.Equal(t, Fragment{"outer": Fragment{"a": "x", "b": 1}}, f)
}

func TestMerge(t *testing.T) {
	t.Run("will not modify its inputs", func(t *testing.T) {
		a := Fragment{"a": 1}
		b := Fragment{"b": 2}

		m, err := Merge(a, b)
		require.NoError(t, err)
		require.Equal(t, Fragment{"a": 1, "b": 2}, m)
		require.Equal(t, Fragment{"a": 1}, a)
		require.Equal(t, Fragment{"b": 2}, b)
	})

	t.Run("will report the first shared key in sorted order", func(t *testing.T) {
		_, err := Merge(Fragment{"x": 1, "y": 1}, Fragment{"y": 2, "x": 2})

		var derr DuplicateFragmentKeyError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, "x", derr.Key)
	})
}

func ExampleFragments_With() {
	type owner struct{ Address string }

	admin := Func(func(o owner) (Fragment, error) {
		return Fragment{"admin": o.Address}, nil
	})
	paused := Func(func(owner) (Fragment, error) {
		return Fragment{"paused": false}, nil
	})

	f, _ := admin.With(paused).Build(owner{Address: "tz1"})
	fmt.Println(f.Keys())
	// Output: [admin paused]
}
