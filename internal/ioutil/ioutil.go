// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package ioutil provides file helpers shared by the tzgen commands.
package ioutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/z5labs/tzgen/internal/try"
)

// ReadAllAndTryClose reads r until EOF and closes it if it is an [io.Closer].
func ReadAllAndTryClose(r io.Reader) (_ []byte, err error) {
	defer try.Close(&err, r)
	return io.ReadAll(r)
}

// CopyAndTryClose copies src to dst and closes src if it is an [io.Closer].
func CopyAndTryClose(dst io.Writer, src io.Reader) (_ int64, err error) {
	defer try.Close(&err, src)
	return io.Copy(dst, src)
}

// ReadFile reads the whole file at path.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return ReadAllAndTryClose(f)
}

// WriteFile writes src to path, creating any missing parent directories.
func WriteFile(path string, src io.Reader) (err error) {
	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer try.Close(&err, f)

	_, err = CopyAndTryClose(f, src)
	return err
}
