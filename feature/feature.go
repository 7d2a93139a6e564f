// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package feature defines the configuration dimensions of an FA2 contract
// and the rules deciding which combinations of them are valid.
//
// A contract is described by a [Selection] which picks exactly one
// [Implementation], one [Admin], one [MinterAdmin] and any subset of
// [Capability] flags. Every enumeration has an invalid zero value so an
// unset dimension can always be detected by [Validate].
package feature

import (
	"fmt"
	"strings"
)

// Dimension names one configuration axis of a contract.
type Dimension string

const (
	DimensionImplementation Dimension = "implementation"
	DimensionAdmin          Dimension = "admin"
	DimensionMinterAdmin    Dimension = "minter admin"
	DimensionCapability     Dimension = "minter"
)

// Implementation selects the core FA2 asset model.
type Implementation uint8

const (
	NFT Implementation = iota + 1
	Fungible
	MultiFungible
)

var implementationDirectives = [...]string{
	NFT:           "USE_NFT_TOKEN",
	Fungible:      "USE_FUNGIBLE_TOKEN",
	MultiFungible: "USE_MULTI_FUNGIBLE_TOKEN",
}

// AllImplementations returns every Implementation in declaration order.
func AllImplementations() []Implementation {
	return []Implementation{NFT, Fungible, MultiFungible}
}

// Valid reports whether i is a member of the enumeration.
func (i Implementation) Valid() bool {
	return i >= NFT && i <= MultiFungible
}

// Directive returns the compiler directive enabling this implementation.
func (i Implementation) Directive() string {
	if !i.Valid() {
		return ""
	}
	return implementationDirectives[i]
}

// String implements the [fmt.Stringer] interface.
func (i Implementation) String() string {
	if !i.Valid() {
		return "UNKNOWN_IMPLEMENTATION"
	}
	return i.Directive()
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (i Implementation) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, UnsetDimensionError{Dimension: DimensionImplementation}
	}
	return []byte(i.Directive()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (i *Implementation) UnmarshalText(b []byte) error {
	v, err := lookupDirective(DimensionImplementation, string(b), AllImplementations())
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// Admin selects how the contract is administered.
type Admin uint8

const (
	NoAdmin Admin = iota + 1
	SimpleAdmin
	PausableSimpleAdmin
	MultiAdmin
)

var adminDirectives = [...]string{
	NoAdmin:             "USE_NO_ADMIN",
	SimpleAdmin:         "USE_SIMPLE_ADMIN",
	PausableSimpleAdmin: "USE_PAUSABLE_SIMPLE_ADMIN",
	MultiAdmin:          "USE_MULTI_ADMIN",
}

// AllAdmins returns every Admin in declaration order.
func AllAdmins() []Admin {
	return []Admin{NoAdmin, SimpleAdmin, PausableSimpleAdmin, MultiAdmin}
}

// Valid reports whether a is a member of the enumeration.
func (a Admin) Valid() bool {
	return a >= NoAdmin && a <= MultiAdmin
}

// Pausable reports whether the admin model carries a paused flag.
func (a Admin) Pausable() bool {
	return a == PausableSimpleAdmin || a == MultiAdmin
}

// Directive returns the compiler directive enabling this admin model.
func (a Admin) Directive() string {
	if !a.Valid() {
		return ""
	}
	return adminDirectives[a]
}

// String implements the [fmt.Stringer] interface.
func (a Admin) String() string {
	if !a.Valid() {
		return "UNKNOWN_ADMIN"
	}
	return a.Directive()
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (a Admin) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, UnsetDimensionError{Dimension: DimensionAdmin}
	}
	return []byte(a.Directive()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (a *Admin) UnmarshalText(b []byte) error {
	v, err := lookupDirective(DimensionAdmin, string(b), AllAdmins())
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MinterAdmin selects who is allowed to mint and burn tokens.
type MinterAdmin uint8

const (
	NullMinterAdmin MinterAdmin = iota + 1
	AdminAsMinter
	MultiMinterAdmin
)

var minterAdminDirectives = [...]string{
	NullMinterAdmin:  "USE_NULL_MINTER_ADMIN",
	AdminAsMinter:    "USE_ADMIN_AS_MINTER",
	MultiMinterAdmin: "USE_MULTI_MINTER_ADMIN",
}

// AllMinterAdmins returns every MinterAdmin in declaration order.
func AllMinterAdmins() []MinterAdmin {
	return []MinterAdmin{NullMinterAdmin, AdminAsMinter, MultiMinterAdmin}
}

// Valid reports whether m is a member of the enumeration.
func (m MinterAdmin) Valid() bool {
	return m >= NullMinterAdmin && m <= MultiMinterAdmin
}

// Directive returns the compiler directive enabling this minter admin model.
func (m MinterAdmin) Directive() string {
	if !m.Valid() {
		return ""
	}
	return minterAdminDirectives[m]
}

// String implements the [fmt.Stringer] interface.
func (m MinterAdmin) String() string {
	if !m.Valid() {
		return "UNKNOWN_MINTER_ADMIN"
	}
	return m.Directive()
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (m MinterAdmin) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, UnsetDimensionError{Dimension: DimensionMinterAdmin}
	}
	return []byte(m.Directive()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (m *MinterAdmin) UnmarshalText(b []byte) error {
	v, err := lookupDirective(DimensionMinterAdmin, string(b), AllMinterAdmins())
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Capability is an independently selectable minting related ability.
type Capability uint8

const (
	Mint Capability = iota + 1
	Burn
	Freeze
)

var capabilityDirectives = [...]string{
	Mint:   "CAN_MINT",
	Burn:   "CAN_BURN",
	Freeze: "CAN_FREEZE",
}

// AllCapabilities returns every Capability in declaration order.
func AllCapabilities() []Capability {
	return []Capability{Mint, Burn, Freeze}
}

// Valid reports whether c is a member of the enumeration.
func (c Capability) Valid() bool {
	return c >= Mint && c <= Freeze
}

// Directive returns the compiler directive enabling this capability.
func (c Capability) Directive() string {
	if !c.Valid() {
		return ""
	}
	return capabilityDirectives[c]
}

// String implements the [fmt.Stringer] interface.
func (c Capability) String() string {
	if !c.Valid() {
		return "UNKNOWN_CAPABILITY"
	}
	return c.Directive()
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (c Capability) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, UnknownEnumTokenError{Dimension: DimensionCapability, Token: c.String(), Choices: directivesOf(AllCapabilities())}
	}
	return []byte(c.Directive()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (c *Capability) UnmarshalText(b []byte) error {
	v, err := lookupDirective(DimensionCapability, string(b), AllCapabilities())
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// CapabilitySet is an immutable set of capabilities. The zero value is the empty set.
type CapabilitySet uint8

// Capabilities returns the set containing the given capabilities.
// Invalid capabilities are ignored.
func Capabilities(cs ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range cs {
		s = s.With(c)
	}
	return s
}

// With returns a copy of s which also contains c.
func (s CapabilitySet) With(c Capability) CapabilitySet {
	if !c.Valid() {
		return s
	}
	return s | 1<<(c-1)
}

// Has reports whether c is a member of s.
func (s CapabilitySet) Has(c Capability) bool {
	if !c.Valid() {
		return false
	}
	return s&(1<<(c-1)) != 0
}

// Empty reports whether s has no members.
func (s CapabilitySet) Empty() bool {
	return s == 0
}

// Members returns the capabilities in s in declaration order.
func (s CapabilitySet) Members() []Capability {
	cs := make([]Capability, 0, 3)
	for _, c := range AllCapabilities() {
		if s.Has(c) {
			cs = append(cs, c)
		}
	}
	return cs
}

// String implements the [fmt.Stringer] interface.
func (s CapabilitySet) String() string {
	members := s.Members()
	ss := make([]string, len(members))
	for i, c := range members {
		ss[i] = c.String()
	}
	return "{" + strings.Join(ss, ", ") + "}"
}

// Selection is one complete choice across every feature dimension.
// Selections are plain values and are never mutated after validation.
type Selection struct {
	Implementation Implementation
	Admin          Admin
	MinterAdmin    MinterAdmin
	Capabilities   CapabilitySet
}

// String implements the [fmt.Stringer] interface.
func (s Selection) String() string {
	return fmt.Sprintf("%s %s %s %s", s.Implementation, s.Admin, s.MinterAdmin, s.Capabilities)
}

// AllSelections enumerates every valid Selection, dimension by dimension
// in declaration order.
func AllSelections() []Selection {
	var sets []CapabilitySet
	for bits := CapabilitySet(0); bits < 1<<len(AllCapabilities()); bits++ {
		sets = append(sets, bits)
	}

	var sels []Selection
	for _, impl := range AllImplementations() {
		for _, admin := range AllAdmins() {
			for _, ma := range AllMinterAdmins() {
				for _, caps := range sets {
					sel := Selection{
						Implementation: impl,
						Admin:          admin,
						MinterAdmin:    ma,
						Capabilities:   caps,
					}
					if Validate(sel) != nil {
						continue
					}
					sels = append(sels, sel)
				}
			}
		}
	}
	return sels
}

type directiveValue interface {
	comparable
	Directive() string
}

func directivesOf[T directiveValue](vs []T) []string {
	ss := make([]string, len(vs))
	for i, v := range vs {
		ss[i] = v.Directive()
	}
	return ss
}

func lookupDirective[T directiveValue](dim Dimension, token string, vs []T) (T, error) {
	for _, v := range vs {
		if v.Directive() == token {
			return v, nil
		}
	}
	var zero T
	return zero, UnknownEnumTokenError{
		Dimension: dim,
		Token:     token,
		Choices:   directivesOf(vs),
	}
}
