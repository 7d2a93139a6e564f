// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storage

import (
	"github.com/z5labs/tzgen/builder"
	"github.com/z5labs/tzgen/feature"
)

type adminParams struct {
	owner Address
}

func projectAdmin(admin feature.Admin) func(Params) (adminParams, error) {
	return func(p Params) (adminParams, error) {
		if p.Owner == "" {
			return adminParams{}, MissingOwnerError{Admin: admin}
		}
		owner, err := ParseAddress(p.Owner)
		if err != nil {
			return adminParams{}, err
		}
		return adminParams{owner: owner}, nil
	}
}

var simpleAdmin = builder.Lift(func(p adminParams) Record {
	return Record{
		"admin":         p.owner,
		"pending_admin": (*Address)(nil),
	}
})

var pausable = builder.Const[adminParams](Record{"paused": false})

var multiAdmin = builder.Lift(func(p adminParams) Record {
	return Record{
		"admins":         SetOf(p.owner),
		"pending_admins": MapOf[Address, Unit](),
	}
})

func withPaused(b builder.Builder[adminParams, Record]) builder.BuilderFunc[adminParams, Record] {
	return func(p adminParams) (Record, error) {
		r, err := b.Build(p)
		if err != nil {
			return nil, err
		}
		paused, err := pausable.Build(p)
		if err != nil {
			return nil, err
		}
		f, err := builder.Merge(builder.Fragment(r), builder.Fragment(paused))
		if err != nil {
			return nil, err
		}
		return Record(f), nil
	}
}

func adminFor(admin feature.Admin) builder.Builder[Params, builder.Fragment] {
	var b builder.Builder[adminParams, Record]
	switch admin {
	case feature.SimpleAdmin:
		b = simpleAdmin
	case feature.PausableSimpleAdmin:
		b = withPaused(simpleAdmin)
	case feature.MultiAdmin:
		b = withPaused(multiAdmin)
	default:
		return builder.Empty[Params]()
	}
	return builder.Nested[Params, Record](
		AdminKey,
		builder.TransformInput[Params, adminParams, Record](b, projectAdmin(admin)),
	)
}
