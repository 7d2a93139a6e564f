// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"

	"github.com/z5labs/tzgen/config/key"
)

// NestedKeySeparator separates nested keys in environment variable names,
// e.g. TZGEN_CLIENT__PACKAGE sets client.package.
const NestedKeySeparator = "__"

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	prefix  string
	environ func() []string
}

// FromEnv returns a Source which will apply its config from the
// environment variables of the current process which start with
// prefix. The prefix is stripped and the remaining name lowercased,
// so with the prefix "TZGEN_" the variable TZGEN_LIGO_DIR sets ligo_dir.
func FromEnv(prefix string) Env {
	return Env{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, ok := strings.CutPrefix(k, src.prefix)
		if !ok || name == "" {
			continue
		}

		err := store.Set(key.Split(strings.ToLower(name), NestedKeySeparator), v)
		if err != nil {
			return err
		}
	}
	return nil
}
