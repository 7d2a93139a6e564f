// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package compiler invokes the external LIGO compiler.
package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/z5labs/tzgen/internal/ioutil"

	"go.uber.org/zap"
)

// DefaultImage is the LIGO docker image used when no command is configured.
const DefaultImage = "ligolang/ligo:0.31.0"

// CommandError occurs when the compiler command exits unsuccessfully.
type CommandError struct {
	Args   []string
	Stderr string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e CommandError) Error() string {
	msg := fmt.Sprintf("ligo command failed: %s: %s", strings.Join(e.Args, " "), e.Cause)
	if e.Stderr == "" {
		return msg
	}
	return msg + ": " + e.Stderr
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e CommandError) Unwrap() error {
	return e.Cause
}

// Option configures a [Ligo].
type Option func(*Ligo)

// Command overrides the command used to run LIGO. Compiler arguments are
// appended to args.
func Command(name string, args ...string) Option {
	return func(l *Ligo) {
		l.command = append([]string{name}, args...)
	}
}

// Dir sets the working directory the compiler runs in. Relative source and
// output paths are resolved against it.
func Dir(dir string) Option {
	return func(l *Ligo) {
		l.dir = dir
	}
}

// Logger sets the logger used to report compiler invocations.
func Logger(logger *zap.Logger) Option {
	return func(l *Ligo) {
		l.log = logger
	}
}

// Ligo runs LIGO compiler commands.
type Ligo struct {
	command []string
	dir     string
	log     *zap.Logger
}

// New returns a Ligo which, unless configured otherwise, runs LIGO from
// the [DefaultImage] docker image with the working directory mounted.
func New(opts ...Option) (*Ligo, error) {
	l := &Ligo{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		l.dir = wd
	}
	dir, err := filepath.Abs(l.dir)
	if err != nil {
		return nil, err
	}
	l.dir = dir

	if len(l.command) == 0 {
		l.command = []string{"docker", "run", "--rm", "-v", dir + ":" + dir, "-w", dir, DefaultImage}
	}
	return l, nil
}

func (l *Ligo) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.dir, path)
}

// Compile compiles the contract in src, whose main function is entry,
// to Michelson and writes it to out.
func (l *Ligo) Compile(ctx context.Context, src, entry, out string) error {
	src = l.resolve(src)
	out = l.resolve(out)

	err := os.MkdirAll(filepath.Dir(out), 0o755)
	if err != nil {
		return err
	}

	_, err = l.run(ctx, "compile", "contract", src, "-e", entry, "-o", out)
	if err != nil {
		return err
	}
	l.log.Info("compiled contract", zap.String("source", src), zap.String("output", out))
	return nil
}

// CompileAndLoad compiles the contract like [Ligo.Compile] and returns the
// Michelson code written to out.
func (l *Ligo) CompileAndLoad(ctx context.Context, src, entry, out string) ([]byte, error) {
	err := l.Compile(ctx, src, entry, out)
	if err != nil {
		return nil, err
	}
	return ioutil.ReadFile(l.resolve(out))
}

// Version returns the version reported by the compiler.
func (l *Ligo) Version(ctx context.Context) (string, error) {
	out, err := l.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (l *Ligo) run(ctx context.Context, args ...string) (string, error) {
	argv := append(l.command[1:len(l.command):len(l.command)], args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, l.command[0], argv...)
	cmd.Dir = l.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	l.log.Debug("running ligo", zap.String("command", l.command[0]), zap.Strings("args", argv))
	err := cmd.Run()
	if err != nil {
		l.log.Error("ligo failed", zap.String("stderr", stderr.String()), zap.Error(err))
		return "", CommandError{
			Args:   append([]string{l.command[0]}, argv...),
			Stderr: strings.TrimSpace(stderr.String()),
			Cause:  err,
		}
	}
	if stderr.Len() > 0 {
		l.log.Warn("ligo wrote to stderr", zap.String("stderr", stderr.String()))
	}
	return stdout.String(), nil
}
