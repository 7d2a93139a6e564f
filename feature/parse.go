// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package feature

import "errors"

// Tokens holds the short external vocabulary accepted on the command line.
type Tokens struct {
	// Kind is one of NFT, FT or MFT.
	Kind string

	// Admin is one of NO_ADMIN, SIMPLE, PAUSABLE or MULTI.
	Admin string

	// Minter holds any of MINT, BURN and FREEZE. Repeats are allowed.
	Minter []string

	// MinterAdmin is one of NO_MINTER, CONTRACT_ADMIN or MULTI.
	// Empty means NO_MINTER.
	MinterAdmin string
}

type token[T any] struct {
	name  string
	value T
}

var (
	kindTokens = []token[Implementation]{
		{"NFT", NFT},
		{"FT", Fungible},
		{"MFT", MultiFungible},
	}

	adminTokens = []token[Admin]{
		{"NO_ADMIN", NoAdmin},
		{"SIMPLE", SimpleAdmin},
		{"PAUSABLE", PausableSimpleAdmin},
		{"MULTI", MultiAdmin},
	}

	minterTokens = []token[Capability]{
		{"MINT", Mint},
		{"BURN", Burn},
		{"FREEZE", Freeze},
	}

	minterAdminTokens = []token[MinterAdmin]{
		{"NO_MINTER", NullMinterAdmin},
		{"CONTRACT_ADMIN", AdminAsMinter},
		{"MULTI", MultiMinterAdmin},
	}
)

// KindChoices returns the accepted implementation kind tokens.
func KindChoices() []string { return namesOf(kindTokens) }

// AdminChoices returns the accepted admin tokens.
func AdminChoices() []string { return namesOf(adminTokens) }

// MinterChoices returns the accepted minter capability tokens.
func MinterChoices() []string { return namesOf(minterTokens) }

// MinterAdminChoices returns the accepted minter admin tokens.
func MinterAdminChoices() []string { return namesOf(minterAdminTokens) }

// Parse maps the short external vocabulary onto a Selection and validates it.
// Unknown tokens are rejected with an [UnknownEnumTokenError]; they are never
// replaced by a default.
func Parse(t Tokens) (Selection, error) {
	var errs []error

	impl, err := lookupToken(DimensionImplementation, t.Kind, kindTokens)
	errs = append(errs, err)

	admin, err := lookupToken(DimensionAdmin, t.Admin, adminTokens)
	errs = append(errs, err)

	var caps CapabilitySet
	for _, m := range t.Minter {
		c, err := lookupToken(DimensionCapability, m, minterTokens)
		errs = append(errs, err)
		caps = caps.With(c)
	}

	minterAdmin := NullMinterAdmin
	if t.MinterAdmin != "" {
		minterAdmin, err = lookupToken(DimensionMinterAdmin, t.MinterAdmin, minterAdminTokens)
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return Selection{}, err
	}

	sel := Selection{
		Implementation: impl,
		Admin:          admin,
		MinterAdmin:    minterAdmin,
		Capabilities:   caps,
	}
	if err := Validate(sel); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

func lookupToken[T any](dim Dimension, name string, tokens []token[T]) (T, error) {
	for _, t := range tokens {
		if t.name == name {
			return t.value, nil
		}
	}
	var zero T
	return zero, UnknownEnumTokenError{
		Dimension: dim,
		Token:     name,
		Choices:   namesOf(tokens),
	}
}

func namesOf[T any](tokens []token[T]) []string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.name
	}
	return names
}
