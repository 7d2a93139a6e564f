// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tzgen

import (
	"context"
	"fmt"

	"github.com/z5labs/tzgen/client"
	"github.com/z5labs/tzgen/directive"
	"github.com/z5labs/tzgen/feature"
	"github.com/z5labs/tzgen/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/z5labs/tzgen"

// Options configures [Generate].
type Options struct {
	// Storage parameterizes the initial storage.
	Storage storage.Params

	// Client enables client generation when non-nil.
	Client *client.Options
}

// Artifacts are the mutually consistent outputs generated for a Selection.
type Artifacts struct {
	Source  string
	Storage storage.InitialStorage

	// Client is nil unless [Options.Client] was set.
	Client []byte
}

// SourceError occurs when the contract source fails to generate.
type SourceError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e SourceError) Error() string {
	return fmt.Sprintf("failed to generate contract source: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SourceError) Unwrap() error {
	return e.Cause
}

// StorageError occurs when the initial storage fails to assemble.
type StorageError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e StorageError) Error() string {
	return fmt.Sprintf("failed to assemble initial storage: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e StorageError) Unwrap() error {
	return e.Cause
}

// ClientError occurs when the Go client fails to generate.
type ClientError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ClientError) Error() string {
	return fmt.Sprintf("failed to generate client: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ClientError) Unwrap() error {
	return e.Cause
}

// Generate validates sel and renders every artifact for it concurrently.
// Either all artifacts are returned or none are.
func Generate(ctx context.Context, sel feature.Selection, opts Options) (Artifacts, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "tzgen.Generate", trace.WithAttributes(
		attribute.String("implementation", sel.Implementation.Directive()),
		attribute.String("admin", sel.Admin.Directive()),
		attribute.String("minter_admin", sel.MinterAdmin.Directive()),
	))
	defer span.End()

	err := feature.Validate(sel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid selection")
		return Artifacts{}, err
	}

	var arts Artifacts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return traced(gctx, "directive.Generate", func() (err error) {
			arts.Source, err = directive.Generate(sel)
			if err != nil {
				return SourceError{Cause: err}
			}
			return nil
		})
	})
	g.Go(func() error {
		return traced(gctx, "storage.Assemble", func() (err error) {
			arts.Storage, err = storage.Assemble(sel, opts.Storage)
			if err != nil {
				return StorageError{Cause: err}
			}
			return nil
		})
	})
	if opts.Client != nil {
		g.Go(func() error {
			return traced(gctx, "client.Generate", func() (err error) {
				arts.Client, err = client.Generate(sel, *opts.Client)
				if err != nil {
					return ClientError{Cause: err}
				}
				return nil
			})
		})
	}

	err = g.Wait()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return Artifacts{}, err
	}
	return arts, nil
}

func traced(ctx context.Context, name string, f func() error) error {
	_, span := otel.Tracer(tracerName).Start(ctx, name)
	defer span.End()

	err := ctx.Err()
	if err == nil {
		err = f()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
