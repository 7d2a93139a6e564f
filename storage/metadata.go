// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storage

import (
	"encoding/json"
	"strconv"
)

// ContractMetadata is the TZIP-16 contract metadata big map.
type ContractMetadata = Map[String, Bytes]

// MetadataFromURI returns contract metadata pointing at an off chain
// TZIP-16 document.
func MetadataFromURI(uri string) ContractMetadata {
	return MapOf(Entry[String, Bytes]{Key: "", Value: BytesOf(uri)})
}

// MetadataFromJSON returns contract metadata holding the TZIP-16 document
// in contract storage. doc must be valid JSON.
func MetadataFromJSON(doc []byte) (ContractMetadata, error) {
	if !json.Valid(doc) {
		return ContractMetadata{}, InvalidMetadataError{Reason: "contract metadata is not valid JSON"}
	}
	return MapOf(
		Entry[String, Bytes]{Key: "", Value: BytesOf("tezos-storage:content")},
		Entry[String, Bytes]{Key: "content", Value: Bytes(doc)},
	), nil
}

// TokenMetadata is the TZIP-21 metadata of a single token as stored
// by the contract.
type TokenMetadata struct {
	TokenID   Nat               `json:"token_id"`
	TokenInfo Map[String, Bytes] `json:"token_info"`
}

// OffChainTokenMetadata returns token metadata whose document is stored
// off chain at uri.
func OffChainTokenMetadata(id Nat, uri string) TokenMetadata {
	return TokenMetadata{
		TokenID:   id,
		TokenInfo: MapOf(Entry[String, Bytes]{Key: "", Value: BytesOf(uri)}),
	}
}

// TokenOption customizes the token metadata built by [SimpleTokenMetadata].
type TokenOption func(*tokenInfo)

type tokenInfo struct {
	decimals        Nat
	isBooleanAmount *bool
	symbol          string
	artifactURI     string
}

// Decimals sets the position of the decimal point in token balances.
func Decimals(n Nat) TokenOption {
	return func(ti *tokenInfo) {
		ti.decimals = n
	}
}

// BooleanAmount marks whether an account may only hold 0 or 1 of the token.
func BooleanAmount(b bool) TokenOption {
	return func(ti *tokenInfo) {
		ti.isBooleanAmount = &b
	}
}

// Symbol sets the short display identifier of the token.
func Symbol(s string) TokenOption {
	return func(ti *tokenInfo) {
		ti.symbol = s
	}
}

// ArtifactURI sets the URI of the digital asset the token represents.
func ArtifactURI(uri string) TokenOption {
	return func(ti *tokenInfo) {
		ti.artifactURI = uri
	}
}

// SimpleTokenMetadata returns token metadata with a few essential
// attributes stored on chain. A boolean amount token must have zero decimals.
func SimpleTokenMetadata(id Nat, name string, opts ...TokenOption) (TokenMetadata, error) {
	var ti tokenInfo
	for _, opt := range opts {
		opt(&ti)
	}

	if ti.isBooleanAmount != nil && *ti.isBooleanAmount && ti.decimals != 0 {
		return TokenMetadata{}, InvalidTokenMetadataError{
			TokenID: id,
			Reason:  "isBooleanAmount=true cannot be used with non-zero decimals",
		}
	}

	entries := []Entry[String, Bytes]{
		{Key: "name", Value: BytesOf(name)},
		{Key: "decimals", Value: BytesOf(strconv.FormatUint(uint64(ti.decimals), 10))},
	}
	if ti.isBooleanAmount != nil {
		entries = append(entries, Entry[String, Bytes]{
			Key:   "isBooleanAmount",
			Value: BytesOf(strconv.FormatBool(*ti.isBooleanAmount)),
		})
	}
	if ti.symbol != "" {
		entries = append(entries, Entry[String, Bytes]{Key: "symbol", Value: BytesOf(ti.symbol)})
	}
	if ti.artifactURI != "" {
		entries = append(entries, Entry[String, Bytes]{Key: "artifactUri", Value: BytesOf(ti.artifactURI)})
	}

	return TokenMetadata{
		TokenID:   id,
		TokenInfo: MapOf(entries...),
	}, nil
}

// SimpleNFTMetadata returns the metadata of a non fungible token.
func SimpleNFTMetadata(id Nat, name string, artifactURI string) TokenMetadata {
	entries := []Entry[String, Bytes]{
		{Key: "name", Value: BytesOf(name)},
		{Key: "decimals", Value: BytesOf("0")},
		{Key: "isBooleanAmount", Value: BytesOf("true")},
	}
	if artifactURI != "" {
		entries = append(entries, Entry[String, Bytes]{Key: "artifactUri", Value: BytesOf(artifactURI)})
	}
	return TokenMetadata{
		TokenID:   id,
		TokenInfo: MapOf(entries...),
	}
}
