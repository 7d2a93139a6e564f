// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package workspace locates the files tzgen reads and writes.
//
// A workspace is described by a tzgen.json file in the current directory.
// Every value has a default and may be overridden by the file or by a
// TZGEN_ prefixed environment variable, e.g. TZGEN_LIGO_DIR.
package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/tzgen/config"
	"github.com/z5labs/tzgen/internal/ioutil"
)

// DefaultFileName is the name of the workspace configuration file.
const DefaultFileName = "tzgen.json"

// EnvPrefix prefixes every environment variable which overrides a
// workspace setting.
const EnvPrefix = "TZGEN_"

// Config describes where contract sources, compiled contracts and
// generated clients live.
type Config struct {
	LigoDir       string `config:"ligo_dir" json:"ligo_dir"`
	CompileOutDir string `config:"compile_out_dir" json:"compile_out_dir"`
	ClientDir     string `config:"client_dir" json:"client_dir"`
	ClientPackage string `config:"client_package" json:"client_package"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		LigoDir:       "./ligo",
		CompileOutDir: "./ligo/out",
		ClientDir:     "./client",
		ClientPackage: "fa2",
	}
}

func (cfg Config) source() config.Map {
	return config.Map{
		"ligo_dir":        cfg.LigoDir,
		"compile_out_dir": cfg.CompileOutDir,
		"client_dir":      cfg.ClientDir,
		"client_package":  cfg.ClientPackage,
	}
}

// SourcePath returns the path of the LIGO source file for the named contract.
func (cfg Config) SourcePath(name string) string {
	return filepath.Join(cfg.LigoDir, "src", withExt(name, ".mligo"))
}

// CompiledPath returns the path of the Michelson file for the named contract.
func (cfg Config) CompiledPath(name string) string {
	return filepath.Join(cfg.CompileOutDir, withExt(strings.TrimSuffix(name, ".mligo"), ".tz"))
}

// StoragePath returns the path of the initial storage JSON for the named contract.
func (cfg Config) StoragePath(name string) string {
	return filepath.Join(cfg.CompileOutDir, strings.TrimSuffix(name, ".mligo")+".storage.json")
}

// ClientPath returns the path of the Go client for the named contract.
func (cfg Config) ClientPath(name string) string {
	return filepath.Join(cfg.ClientDir, withExt(name, ".go"))
}

func withExt(name, ext string) string {
	if filepath.Ext(name) == ext {
		return name
	}
	return name + ext
}

// AlreadyExistsError occurs when initializing a workspace whose
// configuration file already exists.
type AlreadyExistsError struct {
	Path string
}

// Error implements the [builtin.error] interface.
func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("workspace configuration already exists: %s", e.Path)
}

// Load reads the workspace configuration at path. A missing file is not
// an error, the defaults and environment still apply.
func Load(path string) (Config, error) {
	return load(path, config.FromEnv(EnvPrefix))
}

func load(path string, env config.Source) (Config, error) {
	srcs := []config.Source{Default().source()}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		r := config.NewFileReader(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		srcs = append(srcs, config.FromJson(r))
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, err
	}
	srcs = append(srcs, env)

	m, err := config.Read(srcs...)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	err = m.Unmarshal(&cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Init writes cfg to path unless a file already exists there. Empty
// fields of cfg are replaced by their defaults.
func Init(path string, cfg Config) (Config, error) {
	_, err := os.Stat(path)
	if err == nil {
		return Config{}, AlreadyExistsError{Path: path}
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg = cfg.withDefaults()
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return Config{}, err
	}
	b = append(b, '\n')

	err = ioutil.WriteFile(path, bytes.NewReader(b))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) withDefaults() Config {
	def := Default()
	if cfg.LigoDir == "" {
		cfg.LigoDir = def.LigoDir
	}
	if cfg.CompileOutDir == "" {
		cfg.CompileOutDir = def.CompileOutDir
	}
	if cfg.ClientDir == "" {
		cfg.ClientDir = def.ClientDir
	}
	if cfg.ClientPackage == "" {
		cfg.ClientPackage = def.ClientPackage
	}
	return cfg
}
