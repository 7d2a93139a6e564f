// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package client

type typeDecl struct {
	name string
	deps []string
	src  string
}

// typeDecls are emitted in this order.
var typeDecls = []typeDecl{
	{
		name: "Address",
		src: `// Address is a base58 encoded account or contract address.
type Address = string`,
	},
	{
		name: "Nat",
		src: `// Nat is a natural number.
type Nat = uint64`,
	},
	{
		name: "TransferDestination",
		deps: []string{"Address", "Nat"},
		src: `// TransferDestination is a single transfer of amount tokens to an owner.
type TransferDestination struct {
	To      Address ` + "`json:\"to_\"`" + `
	TokenID Nat     ` + "`json:\"token_id\"`" + `
	Amount  Nat     ` + "`json:\"amount\"`" + `
}`,
	},
	{
		name: "Transfer",
		deps: []string{"Address", "TransferDestination"},
		src: `// Transfer moves tokens from one owner to many destinations.
type Transfer struct {
	From Address               ` + "`json:\"from_\"`" + `
	Txs  []TransferDestination ` + "`json:\"txs\"`" + `
}`,
	},
	{
		name: "OperatorParam",
		deps: []string{"Address", "Nat"},
		src: `// OperatorParam identifies an operator of an owner's token.
type OperatorParam struct {
	Owner    Address ` + "`json:\"owner\"`" + `
	Operator Address ` + "`json:\"operator\"`" + `
	TokenID  Nat     ` + "`json:\"token_id\"`" + `
}`,
	},
	{
		name: "OperatorUpdate",
		deps: []string{"OperatorParam"},
		src: `// OperatorUpdate either adds or removes an operator.
type OperatorUpdate struct {
	AddOperator    *OperatorParam ` + "`json:\"add_operator,omitempty\"`" + `
	RemoveOperator *OperatorParam ` + "`json:\"remove_operator,omitempty\"`" + `
}`,
	},
	{
		name: "TokenMetadata",
		deps: []string{"Nat"},
		src: `// TokenMetadata is the on chain metadata of a token.
type TokenMetadata struct {
	TokenID   Nat               ` + "`json:\"token_id\"`" + `
	TokenInfo map[string][]byte ` + "`json:\"token_info\"`" + `
}`,
	},
	{
		name: "NFTMint",
		deps: []string{"Address", "TokenMetadata"},
		src: `// NFTMint creates tokens owned by Owner.
type NFTMint struct {
	Owner  Address         ` + "`json:\"owner\"`" + `
	Tokens []TokenMetadata ` + "`json:\"tokens\"`" + `
}`,
	},
	{
		name: "NFTBurn",
		deps: []string{"Address", "Nat"},
		src: `// NFTBurn destroys tokens owned by Owner.
type NFTBurn struct {
	Owner  Address ` + "`json:\"owner\"`" + `
	Tokens []Nat   ` + "`json:\"tokens\"`" + `
}`,
	},
	{
		name: "FungibleMintBurn",
		deps: []string{"Address", "Nat"},
		src: `// FungibleMintBurn changes the balance of Owner by Amount.
type FungibleMintBurn struct {
	Owner  Address ` + "`json:\"owner\"`" + `
	Amount Nat     ` + "`json:\"amount\"`" + `
}`,
	},
	{
		name: "MultiFungibleMintBurn",
		deps: []string{"Address", "Nat"},
		src: `// MultiFungibleMintBurn changes the balance of Owner in token TokenID by Amount.
type MultiFungibleMintBurn struct {
	Owner   Address ` + "`json:\"owner\"`" + `
	TokenID Nat     ` + "`json:\"token_id\"`" + `
	Amount  Nat     ` + "`json:\"amount\"`" + `
}`,
	},
	{
		name: "CreateToken",
		deps: []string{"Nat", "TokenMetadata"},
		src: `// CreateToken registers a new token type.
type CreateToken struct {
	TokenID  Nat           ` + "`json:\"token_id\"`" + `
	Metadata TokenMetadata ` + "`json:\"metadata\"`" + `
}`,
	},
}

// typesOf returns the declarations of every type used by eps,
// including transitive dependencies.
func typesOf(eps []EntryPoint) []string {
	byName := make(map[string]typeDecl, len(typeDecls))
	for _, d := range typeDecls {
		byName[d.name] = d
	}

	used := make(map[string]bool)
	var visit func(string)
	visit = func(name string) {
		if used[name] {
			return
		}
		used[name] = true
		for _, dep := range byName[name].deps {
			visit(dep)
		}
	}
	for _, ep := range eps {
		for _, name := range ep.types {
			visit(name)
		}
	}

	var srcs []string
	for _, d := range typeDecls {
		if used[d.name] {
			srcs = append(srcs, d.src)
		}
	}
	return srcs
}
