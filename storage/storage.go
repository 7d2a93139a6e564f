// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package storage assembles the initial storage of a generated FA2 contract.
//
// Every member of every feature dimension has its own storage builder. The
// builders for a [feature.Selection] are picked with the same branches the
// directive generator uses to enable LIGO modules, so the storage shape
// always matches the compiled contract.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/z5labs/tzgen/builder"
	"github.com/z5labs/tzgen/feature"
)

// Top-level storage keys.
const (
	AssetsKey      = "assets"
	AdminKey       = "admin"
	MinterAdminKey = "minter_admin"
	MintFreezeKey  = "mint_freeze"
	MetadataKey    = "metadata"
)

// Params holds the caller supplied values of the initial storage.
type Params struct {
	// Owner is the initial contract admin. It is required unless
	// the contract has no admin.
	Owner string

	// Minter is an optional initial minter for contracts using the
	// multi minter admin.
	Minter string

	Metadata ContractMetadata
	Tokens   []TokenMetadata
}

// InitialStorage is the complete storage a contract is originated with.
type InitialStorage struct {
	fields builder.Fragment
}

// Keys returns the top-level storage keys in sorted order.
func (s InitialStorage) Keys() []string {
	return s.fields.Keys()
}

// Get returns the value stored under the top-level key.
func (s InitialStorage) Get(key string) (any, bool) {
	v, ok := s.fields[key]
	return v, ok
}

// Fragment returns a copy of the top-level storage record.
func (s InitialStorage) Fragment() builder.Fragment {
	return s.fields.Clone()
}

// MarshalJSON implements the [json.Marshaler] interface.
func (s InitialStorage) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(s.fields))
}

// MissingOwnerError occurs when a contract with an admin is assembled
// without an owner address.
type MissingOwnerError struct {
	Admin feature.Admin
}

// Error implements the [builtin.error] interface.
func (e MissingOwnerError) Error() string {
	return fmt.Sprintf("an owner address is required for %s", e.Admin)
}

// InvalidAddressError occurs when a value is not a valid implicit
// account or contract address.
type InvalidAddressError struct {
	Address string
}

// Error implements the [builtin.error] interface.
func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address: %q", e.Address)
}

// InvalidTokenMetadataError occurs when token metadata cannot be stored
// by the selected contract.
type InvalidTokenMetadataError struct {
	TokenID Nat
	Reason  string
}

// Error implements the [builtin.error] interface.
func (e InvalidTokenMetadataError) Error() string {
	return fmt.Sprintf("invalid metadata for token %d: %s", e.TokenID, e.Reason)
}

// InvalidMetadataError occurs when contract metadata is malformed.
type InvalidMetadataError struct {
	Reason string
}

// Error implements the [builtin.error] interface.
func (e InvalidMetadataError) Error() string {
	return "invalid contract metadata: " + e.Reason
}

// Assemble validates sel and builds the initial storage of the matching
// contract from p.
func Assemble(sel feature.Selection, p Params) (InitialStorage, error) {
	err := feature.Validate(sel)
	if err != nil {
		return InitialStorage{}, err
	}

	f, err := Builder(sel).Build(p)
	if err != nil {
		return InitialStorage{}, err
	}
	return InitialStorage{fields: f}, nil
}

// Builder returns the storage builder for sel without validating it.
// It is exposed for composing additional fragments on top of the
// generated storage.
func Builder(sel feature.Selection) builder.Fragments[Params] {
	return builder.From[Params](assetsFor(sel.Implementation)).
		With(adminFor(sel.Admin)).
		With(minterAdminFor(sel.MinterAdmin)).
		With(freezeFor(sel.Capabilities)).
		With(metadataStorage)
}

var metadataStorage = builder.Lift(func(p Params) builder.Fragment {
	return builder.Fragment{MetadataKey: p.Metadata}
})

func freezeFor(caps feature.CapabilitySet) builder.Builder[Params, builder.Fragment] {
	if !caps.Has(feature.Freeze) {
		return builder.Empty[Params]()
	}
	return builder.Const[Params](builder.Fragment{MintFreezeKey: false})
}
