// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package directive renders the conditional compilation directives which
// assemble an FA2 contract from the LIGO module library.
//
// Every member of every dimension is always emitted, either enabled or
// commented out, so the directive table has the same lines for every
// selection and only the markers change.
package directive

import (
	"bufio"
	"strings"
	"text/template"

	"github.com/z5labs/tzgen/feature"
)

// EntryPointInclude is the library file providing the contract entry point.
const EntryPointInclude = "../fa2_lib/fa2_asset.mligo"

// Line is one directive of the generated table.
type Line struct {
	Name    string
	Enabled bool
}

// String renders the line as it appears in the generated source.
func (l Line) String() string {
	def := "#define " + l.Name
	if l.Enabled {
		return def
	}
	return "(* " + def + " *)"
}

// Section is the directive table of one dimension.
type Section struct {
	Dimension feature.Dimension
	Lines     []Line
}

// Sections returns the directive table for sel, one section per dimension
// in the order: implementation, admin, minter admin, capability.
// Within a section lines follow enumeration declaration order.
func Sections(sel feature.Selection) []Section {
	return []Section{
		{
			Dimension: feature.DimensionImplementation,
			Lines: linesOf(feature.AllImplementations(), func(i feature.Implementation) bool {
				return i == sel.Implementation
			}),
		},
		{
			Dimension: feature.DimensionAdmin,
			Lines: linesOf(feature.AllAdmins(), func(a feature.Admin) bool {
				return a == sel.Admin
			}),
		},
		{
			Dimension: feature.DimensionMinterAdmin,
			Lines: linesOf(feature.AllMinterAdmins(), func(m feature.MinterAdmin) bool {
				return m == sel.MinterAdmin
			}),
		},
		{
			Dimension: feature.DimensionCapability,
			Lines:     linesOf(feature.AllCapabilities(), sel.Capabilities.Has),
		},
	}
}

// Lines returns every directive line for sel in generation order.
func Lines(sel feature.Selection) []Line {
	var lines []Line
	for _, s := range Sections(sel) {
		lines = append(lines, s.Lines...)
	}
	return lines
}

type directiveValue interface {
	Directive() string
}

func linesOf[T directiveValue](vs []T, enabled func(T) bool) []Line {
	lines := make([]Line, len(vs))
	for i, v := range vs {
		lines[i] = Line{
			Name:    v.Directive(),
			Enabled: enabled(v),
		}
	}
	return lines
}

var contractTemplate = template.Must(template.New("contract").Funcs(template.FuncMap{
	"lines": renderLines,
}).Parse(`(** Assemble different modules into a single FA2 contract implementation *)

(* Choose one of the FA2 core implementations *)

{{ lines .Implementation }}

(* Choose one of the admin modules implementation *)

{{ lines .Admin }}

(* Choose one of the minter admin modules implementation *)

{{ lines .MinterAdmin }}

(*
Choose minter functionality to plug-in.
You can choose multiple options independently, although "CAN_FREEZE" only
makes sense if at least one of "CAN_MINT", "CAN_BURN" is selected.
*)

{{ lines .Capability }}

(** Contract entry point is "Asset.main" function *)
#include "{{ .Include }}"

let asset_main = Asset.main
`))

func renderLines(s Section) string {
	ss := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		ss[i] = l.String()
	}
	return strings.Join(ss, "\n")
}

type templateData struct {
	Implementation Section
	Admin          Section
	MinterAdmin    Section
	Capability     Section
	Include        string
}

// Generate validates sel and renders the contract source selecting the
// matching LIGO modules. No text is returned for an invalid selection.
func Generate(sel feature.Selection) (string, error) {
	err := feature.Validate(sel)
	if err != nil {
		return "", err
	}

	sections := Sections(sel)
	data := templateData{
		Implementation: sections[0],
		Admin:          sections[1],
		MinterAdmin:    sections[2],
		Capability:     sections[3],
		Include:        EntryPointInclude,
	}

	var sb strings.Builder
	err = contractTemplate.Execute(&sb, data)
	if err != nil {
		return "", RenderError{Cause: err}
	}
	return sb.String(), nil
}

// RenderError occurs when the contract template fails to execute.
type RenderError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e RenderError) Error() string {
	return "failed to render contract source: " + e.Cause.Error()
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e RenderError) Unwrap() error {
	return e.Cause
}

// Enabled returns the names of the enabled directives in text,
// in the order they appear.
func Enabled(text string) []string {
	var names []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		name, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "#define ")
		if !ok {
			continue
		}
		names = append(names, strings.TrimSpace(name))
	}
	return names
}
