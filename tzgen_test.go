// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tzgen

import (
	"context"
	"slices"
	"testing"

	"github.com/z5labs/tzgen/client"
	"github.com/z5labs/tzgen/directive"
	"github.com/z5labs/tzgen/feature"
	"github.com/z5labs/tzgen/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const owner = "tz1YPSCGWXwBdTncK2aCctSZAXWvGsGwVJqU"

var multiFungible = feature.Selection{
	Implementation: feature.MultiFungible,
	Admin:          feature.MultiAdmin,
	MinterAdmin:    feature.MultiMinterAdmin,
	Capabilities:   feature.Capabilities(feature.Mint, feature.Burn, feature.Freeze),
}

func TestGenerate(t *testing.T) {
	t.Run("will generate every artifact", func(t *testing.T) {
		arts, err := Generate(context.Background(), multiFungible, Options{
			Storage: storage.Params{Owner: owner},
			Client:  &client.Options{},
		})
		require.NoError(t, err)

		require.Contains(t, directive.Enabled(arts.Source), "USE_MULTI_MINTER_ADMIN")
		require.Equal(t, []string{
			storage.AdminKey,
			storage.AssetsKey,
			storage.MetadataKey,
			storage.MintFreezeKey,
			storage.MinterAdminKey,
		}, arts.Storage.Keys())
		require.Contains(t, string(arts.Client), "func (c *Contract) MintFreeze(")
	})

	t.Run("will skip the client", func(t *testing.T) {
		t.Run("if no client options are given", func(t *testing.T) {
			arts, err := Generate(context.Background(), multiFungible, Options{
				Storage: storage.Params{Owner: owner},
			})
			require.NoError(t, err)
			require.NotEmpty(t, arts.Source)
			require.Nil(t, arts.Client)
		})
	})

	t.Run("will return no artifacts", func(t *testing.T) {
		t.Run("if the selection is invalid", func(t *testing.T) {
			sel := multiFungible
			sel.Capabilities = feature.Capabilities(feature.Freeze)

			arts, err := Generate(context.Background(), sel, Options{})

			var ferr feature.FreezeWithoutMintOrBurnError
			require.ErrorAs(t, err, &ferr)
			require.Empty(t, arts.Source)
		})

		t.Run("if the storage fails to assemble", func(t *testing.T) {
			arts, err := Generate(context.Background(), multiFungible, Options{
				Client: &client.Options{},
			})

			var serr StorageError
			if !assert.ErrorAs(t, err, &serr) {
				return
			}

			var merr storage.MissingOwnerError
			require.ErrorAs(t, err, &merr)
			require.Empty(t, arts.Source)
			require.Nil(t, arts.Client)
		})

		t.Run("if the client fails to generate", func(t *testing.T) {
			arts, err := Generate(context.Background(), multiFungible, Options{
				Storage: storage.Params{Owner: owner},
				Client:  &client.Options{Package: "not a package"},
			})

			var cerr ClientError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}

			var perr client.InvalidPackageError
			require.ErrorAs(t, err, &perr)
			require.Empty(t, arts.Source)
			require.Empty(t, arts.Storage.Keys())
		})

		t.Run("if the context is cancelled", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := Generate(ctx, multiFungible, Options{Storage: storage.Params{Owner: owner}})
			require.ErrorIs(t, err, context.Canceled)
		})
	})

	t.Run("will record a span per artifact", func(t *testing.T) {
		prev := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(prev) })

		rec := tracetest.NewSpanRecorder()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

		_, err := Generate(context.Background(), multiFungible, Options{
			Storage: storage.Params{Owner: owner},
			Client:  &client.Options{},
		})
		require.NoError(t, err)

		var names []string
		for _, span := range rec.Ended() {
			names = append(names, span.Name())
		}
		require.ElementsMatch(t, []string{
			"tzgen.Generate",
			"directive.Generate",
			"storage.Assemble",
			"client.Generate",
		}, names)
	})
}

func TestGenerate_AllSelections(t *testing.T) {
	for _, sel := range feature.AllSelections() {
		arts, err := Generate(context.Background(), sel, Options{
			Storage: storage.Params{Owner: owner},
		})
		if !assert.NoError(t, err, sel) {
			return
		}

		enabled := directive.Enabled(arts.Source)
		_, hasFreeze := arts.Storage.Get(storage.MintFreezeKey)
		if !assert.Equal(t, slices.Contains(enabled, "CAN_FREEZE"), hasFreeze, sel) {
			return
		}
		_, hasAdmin := arts.Storage.Get(storage.AdminKey)
		if !assert.Equal(t, !slices.Contains(enabled, "USE_NO_ADMIN"), hasAdmin, sel) {
			return
		}
		_, hasMinterAdmin := arts.Storage.Get(storage.MinterAdminKey)
		if !assert.Equal(t, !slices.Contains(enabled, "USE_NULL_MINTER_ADMIN"), hasMinterAdmin, sel) {
			return
		}
	}
}
