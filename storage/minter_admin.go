// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storage

import (
	"github.com/z5labs/tzgen/builder"
	"github.com/z5labs/tzgen/feature"
)

// Minters is the minter registry of a multi minter admin.
type Minters = Map[Address, Unit]

type minterAdminParams struct {
	minters []Address
}

// projectMinterAdmin reads the initial minter of a multi minter admin.
func projectMinterAdmin(p Params) (minterAdminParams, error) {
	if p.Minter == "" {
		return minterAdminParams{}, nil
	}
	minter, err := ParseAddress(p.Minter)
	if err != nil {
		return minterAdminParams{}, err
	}
	return minterAdminParams{minters: []Address{minter}}, nil
}

var adminAsMinter = builder.Const[Params, any](Unit{})

var multiMinterAdmin = builder.TransformInput[Params, minterAdminParams, any](
	builder.Lift(func(p minterAdminParams) any {
		entries := make([]Entry[Address, Unit], 0, len(p.minters))
		for _, m := range p.minters {
			entries = append(entries, Entry[Address, Unit]{Key: m})
		}
		return MapOf(entries...)
	}),
	projectMinterAdmin,
)

func minterAdminFor(ma feature.MinterAdmin) builder.Builder[Params, builder.Fragment] {
	var b builder.Builder[Params, any]
	switch ma {
	case feature.AdminAsMinter:
		b = adminAsMinter
	case feature.MultiMinterAdmin:
		b = multiMinterAdmin
	default:
		return builder.Empty[Params]()
	}
	return builder.Nested[Params, any](MinterAdminKey, b)
}
