// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package client

import (
	"strings"

	"github.com/z5labs/tzgen/feature"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EntryPoint is a contract entry point reachable for a selection.
type EntryPoint struct {
	// Name is the Michelson entry point name.
	Name string

	// Param is the Go type of the entry point parameter. It is
	// empty for entry points taking unit.
	Param string

	Doc   string
	types []string
}

// Method returns the Go method name of the entry point.
func (e EntryPoint) Method() string {
	return MethodName(e.Name)
}

// MethodName converts a snake case entry point name into an exported Go
// method name, e.g. update_operators becomes UpdateOperators.
func MethodName(entrypoint string) string {
	title := cases.Title(language.Und)
	words := strings.Split(entrypoint, "_")
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, "")
}

var coreEntryPoints = []EntryPoint{
	{
		Name:  "transfer",
		Param: "[]Transfer",
		Doc:   "transfers tokens between owners.",
		types: []string{"Transfer"},
	},
	{
		Name:  "update_operators",
		Param: "[]OperatorUpdate",
		Doc:   "adds or removes operators of the owners' tokens.",
		types: []string{"OperatorUpdate"},
	},
}

var (
	setAdmin = EntryPoint{
		Name:  "set_admin",
		Param: "Address",
		Doc:   "proposes a new admin. Only callable by an admin.",
		types: []string{"Address"},
	}
	confirmAdmin = EntryPoint{
		Name: "confirm_admin",
		Doc:  "replaces the admin with the pending admin. Only callable by the pending admin.",
	}
	pause = EntryPoint{
		Name:  "pause",
		Param: "bool",
		Doc:   "pauses or unpauses the contract. Only callable by an admin.",
	}
	removeAdmin = EntryPoint{
		Name:  "remove_admin",
		Param: "Address",
		Doc:   "removes one of the admins. Only callable by an admin.",
		types: []string{"Address"},
	}
)

func adminEntryPoints(a feature.Admin) []EntryPoint {
	switch a {
	case feature.SimpleAdmin:
		return []EntryPoint{setAdmin, confirmAdmin}
	case feature.PausableSimpleAdmin:
		return []EntryPoint{setAdmin, confirmAdmin, pause}
	case feature.MultiAdmin:
		return []EntryPoint{setAdmin, confirmAdmin, pause, removeAdmin}
	default:
		return nil
	}
}

func minterAdminEntryPoints(ma feature.MinterAdmin) []EntryPoint {
	if ma != feature.MultiMinterAdmin {
		return nil
	}
	return []EntryPoint{
		{
			Name:  "add_minter",
			Param: "Address",
			Doc:   "allows minter to mint and burn tokens. Only callable by an admin.",
			types: []string{"Address"},
		},
		{
			Name:  "remove_minter",
			Param: "Address",
			Doc:   "revokes the minting rights of minter. Only callable by an admin.",
			types: []string{"Address"},
		},
	}
}

func mintEntryPoints(impl feature.Implementation) []EntryPoint {
	switch impl {
	case feature.NFT:
		return []EntryPoint{{
			Name:  "mint",
			Param: "[]NFTMint",
			Doc:   "creates new tokens owned by the given owners.",
			types: []string{"NFTMint"},
		}}
	case feature.Fungible:
		return []EntryPoint{{
			Name:  "mint",
			Param: "[]FungibleMintBurn",
			Doc:   "increases the balances of the given owners.",
			types: []string{"FungibleMintBurn"},
		}}
	case feature.MultiFungible:
		return []EntryPoint{
			{
				Name:  "create_tokens",
				Param: "[]CreateToken",
				Doc:   "registers new token types.",
				types: []string{"CreateToken"},
			},
			{
				Name:  "mint",
				Param: "[]MultiFungibleMintBurn",
				Doc:   "increases the balances of the given owners.",
				types: []string{"MultiFungibleMintBurn"},
			},
		}
	default:
		return nil
	}
}

func burnEntryPoints(impl feature.Implementation) []EntryPoint {
	switch impl {
	case feature.NFT:
		return []EntryPoint{{
			Name:  "burn",
			Param: "[]NFTBurn",
			Doc:   "destroys tokens of the given owners.",
			types: []string{"NFTBurn"},
		}}
	case feature.Fungible:
		return []EntryPoint{{
			Name:  "burn",
			Param: "[]FungibleMintBurn",
			Doc:   "decreases the balances of the given owners.",
			types: []string{"FungibleMintBurn"},
		}}
	case feature.MultiFungible:
		return []EntryPoint{{
			Name:  "burn",
			Param: "[]MultiFungibleMintBurn",
			Doc:   "decreases the balances of the given owners.",
			types: []string{"MultiFungibleMintBurn"},
		}}
	default:
		return nil
	}
}

var mintFreeze = EntryPoint{
	Name: "mint_freeze",
	Doc:  "permanently disables minting. Only callable by a minter admin.",
}

// EntryPoints returns the entry points of the contract selected by sel.
func EntryPoints(sel feature.Selection) ([]EntryPoint, error) {
	err := feature.Validate(sel)
	if err != nil {
		return nil, err
	}

	eps := append([]EntryPoint{}, coreEntryPoints...)
	eps = append(eps, adminEntryPoints(sel.Admin)...)
	eps = append(eps, minterAdminEntryPoints(sel.MinterAdmin)...)
	if sel.Capabilities.Has(feature.Mint) {
		eps = append(eps, mintEntryPoints(sel.Implementation)...)
	}
	if sel.Capabilities.Has(feature.Burn) {
		eps = append(eps, burnEntryPoints(sel.Implementation)...)
	}
	if sel.Capabilities.Has(feature.Freeze) {
		eps = append(eps, mintFreeze)
	}
	return eps, nil
}
