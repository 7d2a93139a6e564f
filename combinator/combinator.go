// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package combinator provides a fluent API for choosing contract features
// which only allows valid feature combinations to be expressed.
//
// Each step of the construction is its own type and only exposes the
// choices which are valid at that point. For example, freezing can only
// be chosen after minting or burning, and a contract without any minter
// capability can only use the null minter admin.
//
//	src, err := combinator.Implement().
//	    NFT().
//	    WithPausableSimpleAdmin().
//	    WithMint().
//	    WithFreeze().
//	    WithAdminAsMinter().
//	    Generate()
package combinator

import (
	"github.com/z5labs/tzgen/directive"
	"github.com/z5labs/tzgen/feature"
)

// Implement starts a new feature selection.
func Implement() SelectImplementation {
	return SelectImplementation{}
}

// SelectImplementation is the first construction step.
type SelectImplementation struct{}

// NFT selects the non fungible token implementation.
func (SelectImplementation) NFT() SelectAdmin {
	return SelectAdmin{sel: feature.Selection{Implementation: feature.NFT}}
}

// Fungible selects the single fungible token implementation.
func (SelectImplementation) Fungible() SelectAdmin {
	return SelectAdmin{sel: feature.Selection{Implementation: feature.Fungible}}
}

// MultiFungible selects the multi fungible token implementation.
func (SelectImplementation) MultiFungible() SelectAdmin {
	return SelectAdmin{sel: feature.Selection{Implementation: feature.MultiFungible}}
}

// SelectAdmin is the step choosing the admin model.
type SelectAdmin struct {
	sel feature.Selection
}

func (s SelectAdmin) withAdmin(a feature.Admin) SelectMinter {
	s.sel.Admin = a
	return SelectMinter(s)
}

// WithNoAdmin selects a contract without an admin.
func (s SelectAdmin) WithNoAdmin() SelectMinter {
	return s.withAdmin(feature.NoAdmin)
}

// WithSimpleAdmin selects a single admin.
func (s SelectAdmin) WithSimpleAdmin() SelectMinter {
	return s.withAdmin(feature.SimpleAdmin)
}

// WithPausableSimpleAdmin selects a single admin which may pause the contract.
func (s SelectAdmin) WithPausableSimpleAdmin() SelectMinter {
	return s.withAdmin(feature.PausableSimpleAdmin)
}

// WithMultiAdmin selects a set of admins.
func (s SelectAdmin) WithMultiAdmin() SelectMinter {
	return s.withAdmin(feature.MultiAdmin)
}

// SelectMinter is the step choosing the minting capabilities.
type SelectMinter struct {
	sel feature.Selection
}

// WithNoMinter selects a contract which can neither mint nor burn.
func (s SelectMinter) WithNoMinter() NoMinter {
	return NoMinter(s)
}

// WithMint adds the mint capability.
func (s SelectMinter) WithMint() Mint {
	s.sel.Capabilities = s.sel.Capabilities.With(feature.Mint)
	return Mint{minterAdmin(s)}
}

// WithBurn adds the burn capability.
func (s SelectMinter) WithBurn() Burn {
	s.sel.Capabilities = s.sel.Capabilities.With(feature.Burn)
	return Burn{minterAdmin(s)}
}

// NoMinter is the step after choosing no minting capability.
type NoMinter struct {
	sel feature.Selection
}

// WithNoMinterAdmin completes the selection with the null minter admin.
func (s NoMinter) WithNoMinterAdmin() Terminal {
	s.sel.MinterAdmin = feature.NullMinterAdmin
	return Terminal(s)
}

type minterAdmin struct {
	sel feature.Selection
}

func (s minterAdmin) withMinterAdmin(ma feature.MinterAdmin) Terminal {
	s.sel.MinterAdmin = ma
	return Terminal(s)
}

// WithNoMinterAdmin allows anyone to mint and burn.
func (s minterAdmin) WithNoMinterAdmin() Terminal {
	return s.withMinterAdmin(feature.NullMinterAdmin)
}

// WithAdminAsMinter allows only the contract admin to mint and burn.
func (s minterAdmin) WithAdminAsMinter() Terminal {
	return s.withMinterAdmin(feature.AdminAsMinter)
}

// WithMultiMinterAdmin allows a set of minters to mint and burn.
func (s minterAdmin) WithMultiMinterAdmin() Terminal {
	return s.withMinterAdmin(feature.MultiMinterAdmin)
}

func (s minterAdmin) withFreeze() SelectMinterAdmin {
	s.sel.Capabilities = s.sel.Capabilities.With(feature.Freeze)
	return SelectMinterAdmin{s}
}

// Mint is the step after adding the mint capability.
type Mint struct {
	minterAdmin
}

// WithBurn adds the burn capability.
func (s Mint) WithBurn() MintBurn {
	s.sel.Capabilities = s.sel.Capabilities.With(feature.Burn)
	return MintBurn(s)
}

// WithFreeze adds the capability of permanently freezing minting.
func (s Mint) WithFreeze() SelectMinterAdmin {
	return s.withFreeze()
}

// Burn is the step after adding the burn capability.
type Burn struct {
	minterAdmin
}

// WithMint adds the mint capability.
func (s Burn) WithMint() MintBurn {
	s.sel.Capabilities = s.sel.Capabilities.With(feature.Mint)
	return MintBurn(s)
}

// WithFreeze adds the capability of permanently freezing minting.
func (s Burn) WithFreeze() SelectMinterAdmin {
	return s.withFreeze()
}

// MintBurn is the step after adding both the mint and burn capabilities.
type MintBurn struct {
	minterAdmin
}

// WithFreeze adds the capability of permanently freezing minting.
func (s MintBurn) WithFreeze() SelectMinterAdmin {
	return s.withFreeze()
}

// SelectMinterAdmin is the step choosing who may mint and burn.
type SelectMinterAdmin struct {
	minterAdmin
}

// Terminal is a complete feature selection.
type Terminal struct {
	sel feature.Selection
}

// Selection returns the selected features.
func (t Terminal) Selection() feature.Selection {
	return t.sel
}

// Generate renders the contract source for the selected features.
func (t Terminal) Generate() (string, error) {
	return directive.Generate(t.sel)
}
