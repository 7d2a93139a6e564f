// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storage

import (
	"github.com/z5labs/tzgen/builder"
	"github.com/z5labs/tzgen/feature"
)

// OperatorKey identifies an operator permission: (owner, (operator, token id)).
type OperatorKey = Pair[Address, Pair[Address, Nat]]

// Operators is the FA2 operator set shared by every asset model.
type Operators = Map[OperatorKey, Unit]

// TokenMetadataStorage is the token_metadata big map shared by every asset model.
type TokenMetadataStorage = Map[Nat, TokenMetadata]

type assetParams struct {
	tokens TokenMetadataStorage
}

func projectAssets(single bool) func(Params) (assetParams, error) {
	return func(p Params) (assetParams, error) {
		entries := make([]Entry[Nat, TokenMetadata], 0, len(p.Tokens))
		seen := make(map[Nat]bool, len(p.Tokens))
		for _, md := range p.Tokens {
			if seen[md.TokenID] {
				return assetParams{}, InvalidTokenMetadataError{TokenID: md.TokenID, Reason: "duplicate token id"}
			}
			if single && md.TokenID != 0 {
				return assetParams{}, InvalidTokenMetadataError{TokenID: md.TokenID, Reason: "single asset contracts only hold token 0"}
			}
			seen[md.TokenID] = true
			entries = append(entries, Entry[Nat, TokenMetadata]{Key: md.TokenID, Value: md})
		}
		return assetParams{tokens: MapOf(entries...)}, nil
	}
}

var nftAssets = builder.Lift(func(p assetParams) Record {
	return Record{
		"ledger":         MapOf[Nat, Address](),
		"operators":      MapOf[OperatorKey, Unit](),
		"token_metadata": p.tokens,
	}
})

var fungibleAssets = builder.Lift(func(p assetParams) Record {
	return Record{
		"ledger":         MapOf[Address, Nat](),
		"operators":      MapOf[OperatorKey, Unit](),
		"token_metadata": p.tokens,
		"total_supply":   Nat(0),
	}
})

var multiFungibleAssets = builder.Lift(func(p assetParams) Record {
	supply := make([]Entry[Nat, Nat], 0, p.tokens.Len())
	for _, e := range p.tokens.Entries() {
		supply = append(supply, Entry[Nat, Nat]{Key: e.Key})
	}
	return Record{
		"ledger":         MapOf[Pair[Address, Nat], Nat](),
		"operators":      MapOf[OperatorKey, Unit](),
		"token_metadata": p.tokens,
		"total_supply":   MapOf(supply...),
	}
})

func assetsFor(impl feature.Implementation) builder.Builder[Params, builder.Fragment] {
	var b builder.Builder[assetParams, Record]
	single := false
	switch impl {
	case feature.NFT:
		b = nftAssets
	case feature.Fungible:
		b = fungibleAssets
		single = true
	case feature.MultiFungible:
		b = multiFungibleAssets
	default:
		return builder.Empty[Params]()
	}
	return builder.Nested[Params, Record](
		AssetsKey,
		builder.TransformInput[Params, assetParams, Record](b, projectAssets(single)),
	)
}
