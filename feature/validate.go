// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package feature

import (
	"errors"
	"fmt"
	"strings"
)

// FreezeWithoutMintOrBurnError occurs when the freeze capability is selected
// without either the mint or burn capability.
type FreezeWithoutMintOrBurnError struct {
	Capabilities CapabilitySet
}

// Error implements the [builtin.error] interface.
func (e FreezeWithoutMintOrBurnError) Error() string {
	return fmt.Sprintf("invalid minter option combination %s: %s cannot be used without either %s or %s", e.Capabilities, Freeze, Mint, Burn)
}

// MinterAdminRequiresCapabilityError occurs when a minter admin other than
// [NullMinterAdmin] is selected for a contract which can neither mint nor burn.
type MinterAdminRequiresCapabilityError struct {
	MinterAdmin MinterAdmin
}

// Error implements the [builtin.error] interface.
func (e MinterAdminRequiresCapabilityError) Error() string {
	return fmt.Sprintf("invalid minter admin option %s: it must be %s if no minter option is specified", e.MinterAdmin, NullMinterAdmin)
}

// UnknownEnumTokenError occurs when a token does not name any member
// of a dimension's enumeration.
type UnknownEnumTokenError struct {
	Dimension Dimension
	Token     string
	Choices   []string
}

// Error implements the [builtin.error] interface.
func (e UnknownEnumTokenError) Error() string {
	return fmt.Sprintf("invalid %s option %q, available choices are: %s", e.Dimension, e.Token, strings.Join(e.Choices, ", "))
}

// UnsetDimensionError occurs when a Selection holds the zero value,
// or any other non member value, for a dimension.
type UnsetDimensionError struct {
	Dimension Dimension
}

// Error implements the [builtin.error] interface.
func (e UnsetDimensionError) Error() string {
	return fmt.Sprintf("%s option is not set", e.Dimension)
}

// Validate checks that every dimension of sel holds a member of its
// enumeration and that the combination of dimensions is valid. All
// violations are reported together.
func Validate(sel Selection) error {
	var errs []error
	if !sel.Implementation.Valid() {
		errs = append(errs, UnsetDimensionError{Dimension: DimensionImplementation})
	}
	if !sel.Admin.Valid() {
		errs = append(errs, UnsetDimensionError{Dimension: DimensionAdmin})
	}
	if !sel.MinterAdmin.Valid() {
		errs = append(errs, UnsetDimensionError{Dimension: DimensionMinterAdmin})
	}
	if sel.Capabilities >= 1<<len(AllCapabilities()) {
		errs = append(errs, UnsetDimensionError{Dimension: DimensionCapability})
	}

	caps := sel.Capabilities
	if caps.Has(Freeze) && !caps.Has(Mint) && !caps.Has(Burn) {
		errs = append(errs, FreezeWithoutMintOrBurnError{Capabilities: caps})
	}
	if caps.Empty() && sel.MinterAdmin.Valid() && sel.MinterAdmin != NullMinterAdmin {
		errs = append(errs, MinterAdminRequiresCapabilityError{MinterAdmin: sel.MinterAdmin})
	}
	return errors.Join(errs...)
}
