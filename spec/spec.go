// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package spec persists feature selections as contract specification files.
//
// A specification file names one member of every feature dimension using
// the LIGO directive vocabulary:
//
//	{
//	  "implementation": "USE_NFT_TOKEN",
//	  "admin": "USE_PAUSABLE_SIMPLE_ADMIN",
//	  "minterAdmin": "USE_ADMIN_AS_MINTER",
//	  "minter": ["CAN_MINT", "CAN_FREEZE"]
//	}
//
// Files ending in .yaml or .yml are written and read as YAML, every other
// file as JSON.
package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/tzgen/config"
	"github.com/z5labs/tzgen/feature"
	"github.com/z5labs/tzgen/internal/ioutil"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a specification file.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatOf returns the format of the specification file at path.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

type document struct {
	Implementation string   `json:"implementation" yaml:"implementation" config:"implementation"`
	Admin          string   `json:"admin" yaml:"admin" config:"admin"`
	MinterAdmin    string   `json:"minterAdmin" yaml:"minterAdmin" config:"minterAdmin"`
	Minter         []string `json:"minter" yaml:"minter" config:"minter"`
}

// NotFoundError occurs when a specification file does not exist.
type NotFoundError struct {
	Path string
}

// Error implements the [builtin.error] interface.
func (e NotFoundError) Error() string {
	return fmt.Sprintf("contract specification file not found: %s", e.Path)
}

// Encode validates sel and writes it to w.
func Encode(w io.Writer, sel feature.Selection, format Format) error {
	err := feature.Validate(sel)
	if err != nil {
		return err
	}

	doc := document{
		Implementation: sel.Implementation.Directive(),
		Admin:          sel.Admin.Directive(),
		MinterAdmin:    sel.MinterAdmin.Directive(),
		Minter:         []string{},
	}
	for _, c := range sel.Capabilities.Members() {
		doc.Minter = append(doc.Minter, c.Directive())
	}

	if format == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode reads a specification from r and validates it.
func Decode(r io.Reader, format Format) (feature.Selection, error) {
	var src config.Source = config.FromJson(r)
	if format == YAML {
		src = config.FromYaml(r)
	}

	m, err := config.Read(src)
	if err != nil {
		return feature.Selection{}, err
	}

	var doc document
	err = m.Unmarshal(&doc)
	if err != nil {
		return feature.Selection{}, err
	}
	return doc.selection()
}

func (doc document) selection() (feature.Selection, error) {
	var sel feature.Selection
	errs := []error{
		unmarshalDimension(feature.DimensionImplementation, doc.Implementation, &sel.Implementation),
		unmarshalDimension(feature.DimensionAdmin, doc.Admin, &sel.Admin),
		unmarshalDimension(feature.DimensionMinterAdmin, doc.MinterAdmin, &sel.MinterAdmin),
	}
	for _, name := range doc.Minter {
		var c feature.Capability
		err := c.UnmarshalText([]byte(name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sel.Capabilities = sel.Capabilities.With(c)
	}

	err := errors.Join(errs...)
	if err != nil {
		return feature.Selection{}, err
	}

	err = feature.Validate(sel)
	if err != nil {
		return feature.Selection{}, err
	}
	return sel, nil
}

type textUnmarshaler interface {
	UnmarshalText([]byte) error
}

func unmarshalDimension(dim feature.Dimension, name string, v textUnmarshaler) error {
	if name == "" {
		return feature.UnsetDimensionError{Dimension: dim}
	}
	return v.UnmarshalText([]byte(name))
}

// Save writes sel to the specification file at path, creating any
// missing parent directories.
func Save(path string, sel feature.Selection) error {
	var buf bytes.Buffer
	err := Encode(&buf, sel, FormatOf(path))
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, &buf)
}

// Load reads and validates the specification file at path.
func Load(path string) (feature.Selection, error) {
	r := config.NewFileReader(os.DirFS(filepath.Dir(path)), filepath.Base(path))

	sel, err := Decode(r, FormatOf(path))
	if errors.Is(err, fs.ErrNotExist) {
		return feature.Selection{}, NotFoundError{Path: path}
	}
	return sel, err
}
