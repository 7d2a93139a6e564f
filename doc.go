// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package tzgen composes FA2 token contracts from optional features.
//
// A contract is described by a [feature.Selection]: one core token model,
// one administration model, one minting administration model and a set of
// mint, burn and freeze capabilities. From a single Selection tzgen derives
// three artifacts which always agree with each other:
//
//   - the LIGO source with the conditional compilation directives enabling
//     the selected features (see package directive)
//   - the initial storage whose shape matches those features (see package storage)
//   - a typed Go client exposing exactly the selected entry points (see package client)
//
// [Generate] renders all three at once. Package combinator offers a
// compile-time checked way to build a Selection:
//
//	sel := combinator.Implement().
//	    Fungible().
//	    WithMultiAdmin().
//	    WithMint().
//	    WithBurn().
//	    WithMultiMinterAdmin().
//	    Selection()
package tzgen
