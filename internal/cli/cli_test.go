// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/z5labs/tzgen/directive"
	"github.com/z5labs/tzgen/feature"
	"github.com/z5labs/tzgen/lifecycle"
	"github.com/z5labs/tzgen/spec"
	"github.com/z5labs/tzgen/storage"
	"github.com/z5labs/tzgen/workspace"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const owner = "tz1YPSCGWXwBdTncK2aCctSZAXWvGsGwVJqU"

type result struct {
	stdout string
	stderr string
	err    error
}

func run(args ...string) result {
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), &stdout, &stderr, args...)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

type testWorkspace struct {
	dir    string
	config string
}

func (w testWorkspace) path(elem ...string) string {
	return filepath.Join(append([]string{w.dir}, elem...)...)
}

func (w testWorkspace) run(args ...string) result {
	return run(append(args, "--config", w.config)...)
}

func newWorkspace(t *testing.T) testWorkspace {
	t.Helper()

	dir := t.TempDir()
	w := testWorkspace{dir: dir, config: filepath.Join(dir, workspace.DefaultFileName)}

	res := w.run(
		"init",
		"--ligo-dir", w.path("ligo"),
		"--compile-out-dir", w.path("ligo", "out"),
		"--client-dir", w.path("client"),
	)
	require.NoError(t, res.err)
	return w
}

func (w testWorkspace) nftSpec(t *testing.T) string {
	t.Helper()

	path := w.path("nft.json")
	res := w.run("spec", path, "-k", "NFT", "-a", "PAUSABLE", "-m", "MINT", "-m", "FREEZE", "--minter-admin", "CONTRACT_ADMIN")
	require.NoError(t, res.err)
	return path
}

func TestInit(t *testing.T) {
	t.Run("will write the workspace configuration", func(t *testing.T) {
		w := newWorkspace(t)

		cfg, err := workspace.Load(w.config)
		require.NoError(t, err)
		require.Equal(t, w.path("ligo"), cfg.LigoDir)
		require.Equal(t, w.path("client"), cfg.ClientDir)
		require.Equal(t, workspace.Default().ClientPackage, cfg.ClientPackage)
	})

	t.Run("will return an AlreadyExistsError", func(t *testing.T) {
		t.Run("if the workspace configuration exists", func(t *testing.T) {
			w := newWorkspace(t)

			res := w.run("init")

			var aerr workspace.AlreadyExistsError
			require.ErrorAs(t, res.err, &aerr)
			require.Contains(t, res.stderr, "command failed")
		})
	})
}

func TestSpec(t *testing.T) {
	t.Run("will save the parsed selection", func(t *testing.T) {
		w := newWorkspace(t)
		path := w.nftSpec(t)

		sel, err := spec.Load(path)
		require.NoError(t, err)
		require.Equal(t, feature.Selection{
			Implementation: feature.NFT,
			Admin:          feature.PausableSimpleAdmin,
			MinterAdmin:    feature.AdminAsMinter,
			Capabilities:   feature.Capabilities(feature.Mint, feature.Freeze),
		}, sel)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if freeze is selected alone", func(t *testing.T) {
			w := newWorkspace(t)

			res := w.run("spec", w.path("ft.yaml"), "-k", "FT", "-a", "SIMPLE", "-m", "FREEZE")

			var ferr feature.FreezeWithoutMintOrBurnError
			require.ErrorAs(t, res.err, &ferr)
			require.NoFileExists(t, w.path("ft.yaml"))
		})

		t.Run("if the kind is unknown", func(t *testing.T) {
			w := newWorkspace(t)

			res := w.run("spec", w.path("x.json"), "-k", "NFTS", "-a", "SIMPLE")

			var uerr feature.UnknownEnumTokenError
			require.ErrorAs(t, res.err, &uerr)
			require.Equal(t, "NFTS", uerr.Token)
		})

		t.Run("if the kind flag is missing", func(t *testing.T) {
			w := newWorkspace(t)

			res := w.run("spec", w.path("x.json"), "-a", "SIMPLE")
			require.Error(t, res.err)
		})
	})
}

func TestContract(t *testing.T) {
	w := newWorkspace(t)
	specPath := w.nftSpec(t)

	res := w.run("contract", specPath, "nft")
	require.NoError(t, res.err)

	b, err := os.ReadFile(w.path("ligo", "src", "nft.mligo"))
	require.NoError(t, err)
	require.Equal(t, []string{
		"USE_NFT_TOKEN",
		"USE_PAUSABLE_SIMPLE_ADMIN",
		"USE_ADMIN_AS_MINTER",
		"CAN_MINT",
		"CAN_FREEZE",
	}, directive.Enabled(string(b)))
	require.Contains(t, res.stderr, "generated contract source")
}

func TestStorage(t *testing.T) {
	t.Run("will write the initial storage", func(t *testing.T) {
		w := newWorkspace(t)
		specPath := w.nftSpec(t)
		out := w.path("nft.storage.json")

		res := w.run("storage", specPath, out, "--owner", owner, "--metadata-uri", "ipfs://x", "--token", "0=ipfs://t0")
		require.NoError(t, res.err)

		b, err := os.ReadFile(out)
		require.NoError(t, err)

		var doc map[string]any
		err = json.Unmarshal(b, &doc)
		require.NoError(t, err)
		require.Contains(t, doc, storage.AdminKey)
		require.Contains(t, doc, storage.MintFreezeKey)
		require.Equal(t, "Unit", doc[storage.MinterAdminKey])
	})

	t.Run("will read the owner from the environment", func(t *testing.T) {
		w := newWorkspace(t)
		specPath := w.nftSpec(t)
		t.Setenv("TZGEN_OWNER", owner)

		res := w.run("storage", specPath, w.path("nft.storage.json"))
		require.NoError(t, res.err)
	})

	t.Run("will store the metadata file on chain", func(t *testing.T) {
		w := newWorkspace(t)
		specPath := w.nftSpec(t)
		metadata := w.path("metadata.json")
		err := os.WriteFile(metadata, []byte(`{"name":"nft"}`), 0o644)
		require.NoError(t, err)

		res := w.run("storage", specPath, w.path("nft.storage.json"), "--owner", owner, "--metadata-file", metadata)
		require.NoError(t, res.err)

		b, err := os.ReadFile(w.path("nft.storage.json"))
		require.NoError(t, err)
		require.Contains(t, string(b), "content")
	})

	t.Run("will return an error", func(t *testing.T) {
		testCases := []struct {
			name   string
			args   []string
			assert func(*testing.T, error)
		}{
			{
				name: "if the owner is missing",
				assert: func(t *testing.T, err error) {
					var merr storage.MissingOwnerError
					require.ErrorAs(t, err, &merr)
				},
			},
			{
				name: "if the owner is not an address",
				args: []string{"--owner", "alice"},
				assert: func(t *testing.T, err error) {
					var aerr storage.InvalidAddressError
					require.ErrorAs(t, err, &aerr)
				},
			},
			{
				name: "if a token flag is malformed",
				args: []string{"--owner", owner, "--token", "zero=ipfs://t0"},
				assert: func(t *testing.T, err error) {
					var terr InvalidTokenFlagError
					require.ErrorAs(t, err, &terr)
					require.Equal(t, "zero=ipfs://t0", terr.Value)
				},
			},
			{
				name: "if both metadata sources are given",
				args: []string{"--owner", owner, "--metadata-uri", "ipfs://x", "--metadata-file", "m.json"},
				assert: func(t *testing.T, err error) {
					require.Error(t, err)
				},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				w := newWorkspace(t)
				specPath := w.nftSpec(t)
				out := w.path("nft.storage.json")

				res := w.run(append([]string{"storage", specPath, out}, tc.args...)...)
				tc.assert(t, res.err)
				require.NoFileExists(t, out)
			})
		}
	})

	t.Run("will return a NotFoundError", func(t *testing.T) {
		t.Run("if the specification file does not exist", func(t *testing.T) {
			w := newWorkspace(t)

			res := w.run("storage", w.path("missing.json"), w.path("out.json"), "--owner", owner)

			var nerr spec.NotFoundError
			require.ErrorAs(t, res.err, &nerr)
		})
	})
}

func TestClient(t *testing.T) {
	w := newWorkspace(t)
	specPath := w.nftSpec(t)

	res := w.run("client", specPath, "nft")
	require.NoError(t, res.err)

	b, err := os.ReadFile(w.path("client", "nft.go"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(b), "// Code generated by tzgen. DO NOT EDIT."))
	require.Contains(t, string(b), "package fa2")
	require.Contains(t, string(b), "MintFreeze(")
}

func TestGenerate(t *testing.T) {
	t.Run("will write every artifact", func(t *testing.T) {
		w := newWorkspace(t)
		specPath := w.nftSpec(t)

		res := w.run("generate", specPath, "nft", "--owner", owner, "--trace", "stdout")
		require.NoError(t, res.err)

		require.FileExists(t, w.path("ligo", "src", "nft.mligo"))
		require.FileExists(t, w.path("ligo", "out", "nft.storage.json"))
		require.FileExists(t, w.path("client", "nft.go"))
		require.Contains(t, res.stderr, "tzgen.Generate")
	})

	t.Run("will write nothing", func(t *testing.T) {
		t.Run("if any artifact fails", func(t *testing.T) {
			w := newWorkspace(t)
			specPath := w.nftSpec(t)

			res := w.run("generate", specPath, "nft")
			require.Error(t, res.err)

			require.NoFileExists(t, w.path("ligo", "src", "nft.mligo"))
			require.NoFileExists(t, w.path("ligo", "out", "nft.storage.json"))
			require.NoFileExists(t, w.path("client", "nft.go"))
		})
	})
}

func TestCompile(t *testing.T) {
	t.Run("will run the configured compiler", func(t *testing.T) {
		w := newWorkspace(t)
		specPath := w.nftSpec(t)

		res := w.run("contract", specPath, "nft")
		require.NoError(t, res.err)

		script := w.path("ligo.sh")
		err := os.WriteFile(script, []byte(`out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; fi
  shift
done
echo "parameter unit;" > "$out"
`), 0o755)
		require.NoError(t, err)

		res = w.run("compile", "nft", "--ligo", "sh "+script)
		require.NoError(t, res.err)

		b, err := os.ReadFile(w.path("ligo", "out", "nft.tz"))
		require.NoError(t, err)
		require.Equal(t, "parameter unit;\n", string(b))
	})
}

func TestList(t *testing.T) {
	w := newWorkspace(t)

	res := w.run("list")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, len(feature.AllSelections()))
	require.Equal(t, feature.AllSelections()[0].String(), lines[0])
}

func TestRun(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the log level is unknown", func(t *testing.T) {
			res := run("list", "--config", filepath.Join(t.TempDir(), workspace.DefaultFileName), "--log-level", "loud")
			require.Error(t, res.err)
		})

		t.Run("if the trace exporter is unknown", func(t *testing.T) {
			res := run("list", "--config", filepath.Join(t.TempDir(), workspace.DefaultFileName), "--trace", "jaeger")
			if !assert.Error(t, res.err) {
				return
			}
			require.Contains(t, res.stderr, "jaeger")
		})

		t.Run("if the command is unknown", func(t *testing.T) {
			res := run("originate")
			require.Error(t, res.err)
		})
	})
}

func TestSetup(t *testing.T) {
	newCommand := func(stderr *bytes.Buffer, args ...string) *cobra.Command {
		c := &cli{
			v:      viper.New(),
			log:    zap.NewNop(),
			stdout: &bytes.Buffer{},
			stderr: stderr,
		}
		cmd := c.rootCommand()
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(stderr)
		return cmd
	}

	t.Run("will return a MissingLifecycleError", func(t *testing.T) {
		t.Run("if the command context carries no lifecycle", func(t *testing.T) {
			var stderr bytes.Buffer
			cmd := newCommand(&stderr, "list", "--config", filepath.Join(t.TempDir(), workspace.DefaultFileName))

			err := cmd.ExecuteContext(context.Background())

			var lerr MissingLifecycleError
			require.ErrorAs(t, err, &lerr)
		})
	})

	t.Run("will register its hooks on the lifecycle in the command context", func(t *testing.T) {
		var stderr bytes.Buffer
		cmd := newCommand(&stderr, "list", "--config", filepath.Join(t.TempDir(), workspace.DefaultFileName), "--trace", "stdout")

		lc := &lifecycle.Context{}
		ctx := lifecycle.NewContext(context.Background(), lc)

		err := cmd.ExecuteContext(ctx)
		require.NoError(t, err)

		_, span := otel.Tracer("cli_test").Start(ctx, "before")
		require.True(t, span.IsRecording())
		span.End()

		err = lc.PostRun().Run(ctx)
		require.NoError(t, err)
		require.Contains(t, stderr.String(), "before")

		_, span = otel.Tracer("cli_test").Start(ctx, "after")
		require.False(t, span.IsRecording())
		span.End()
	})
}
