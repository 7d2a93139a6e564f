// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package client generates typed Go accessors for the entry points of a
// generated FA2 contract.
//
// The generated code does not talk to a node itself. Calls are handed to
// an Invoker, which is expected to be backed by the caller's node client.
package client

import (
	"bytes"
	"fmt"
	"go/token"
	"text/template"

	"github.com/z5labs/tzgen/feature"

	"golang.org/x/tools/imports"
)

// DefaultPackage is the package name used when none is configured.
const DefaultPackage = "fa2"

// Options configures the generated source file.
type Options struct {
	// Package is the name of the generated package.
	Package string
}

// InvalidPackageError occurs when the configured package name is not a
// valid Go identifier.
type InvalidPackageError struct {
	Package string
}

// Error implements the [builtin.error] interface.
func (e InvalidPackageError) Error() string {
	return fmt.Sprintf("invalid go package name: %q", e.Package)
}

// RenderError occurs when the client template fails to execute.
type RenderError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e RenderError) Error() string {
	return fmt.Sprintf("failed to render client source: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e RenderError) Unwrap() error {
	return e.Cause
}

// FormatError occurs when the rendered client source cannot be formatted.
type FormatError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e FormatError) Error() string {
	return fmt.Sprintf("failed to format client source: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e FormatError) Unwrap() error {
	return e.Cause
}

// Generate renders a formatted Go source file with an accessor method for
// every entry point reachable for sel.
func Generate(sel feature.Selection, opts Options) ([]byte, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	if !token.IsIdentifier(pkg) {
		return nil, InvalidPackageError{Package: pkg}
	}

	eps, err := EntryPoints(sel)
	if err != nil {
		return nil, err
	}

	data := fileData{
		Package:     pkg,
		Features:    []string{sel.Implementation.Directive(), sel.Admin.Directive(), sel.MinterAdmin.Directive()},
		Types:       typesOf(eps),
		EntryPoints: eps,
	}
	for _, c := range sel.Capabilities.Members() {
		data.Features = append(data.Features, c.Directive())
	}

	var buf bytes.Buffer
	err = fileTemplate.Execute(&buf, data)
	if err != nil {
		return nil, RenderError{Cause: err}
	}

	src, err := imports.Process("", buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, FormatError{Cause: err}
	}
	return src, nil
}

type fileData struct {
	Package     string
	Features    []string
	Types       []string
	EntryPoints []EntryPoint
}

var fileTemplate = template.Must(template.New("client").Parse(`// Code generated by tzgen. DO NOT EDIT.

// Package {{ .Package }} provides typed accessors for an FA2 contract with the features:
{{- range .Features }}
//   - {{ . }}
{{- end }}
package {{ .Package }}

import "context"

// Invoker submits a call of a contract entry point.
type Invoker interface {
	Invoke(ctx context.Context, entrypoint string, param any) error
}
{{ range .Types }}
{{ . }}
{{ end }}
// Contract provides a method for every entry point of the contract.
type Contract struct {
	invoker Invoker
}

// New returns a Contract which submits calls through invoker.
func New(invoker Invoker) *Contract {
	return &Contract{invoker: invoker}
}
{{ range .EntryPoints }}
// {{ .Method }} {{ .Doc }}
{{- if .Param }}
func (c *Contract) {{ .Method }}(ctx context.Context, param {{ .Param }}) error {
	return c.invoker.Invoke(ctx, "{{ .Name }}", param)
}
{{- else }}
func (c *Contract) {{ .Method }}(ctx context.Context) error {
	return c.invoker.Invoke(ctx, "{{ .Name }}", nil)
}
{{- end }}
{{ end }}`))
