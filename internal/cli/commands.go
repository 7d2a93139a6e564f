// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/z5labs/tzgen"
	"github.com/z5labs/tzgen/client"
	"github.com/z5labs/tzgen/compiler"
	"github.com/z5labs/tzgen/directive"
	"github.com/z5labs/tzgen/feature"
	"github.com/z5labs/tzgen/internal/ioutil"
	"github.com/z5labs/tzgen/spec"
	"github.com/z5labs/tzgen/storage"
	"github.com/z5labs/tzgen/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) initCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the workspace configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.v.GetString(configFlag)
			cfg, err := workspace.Init(path, workspace.Config{
				LigoDir:       c.v.GetString("ligo-dir"),
				CompileOutDir: c.v.GetString("compile-out-dir"),
				ClientDir:     c.v.GetString("client-dir"),
				ClientPackage: c.v.GetString("client-package"),
			})
			if err != nil {
				return err
			}
			c.log.Info("created workspace configuration",
				zap.String("path", path),
				zap.String("ligo_dir", cfg.LigoDir),
				zap.String("compile_out_dir", cfg.CompileOutDir),
				zap.String("client_dir", cfg.ClientDir),
			)
			return nil
		},
	}

	def := workspace.Default()
	fs := cmd.Flags()
	fs.StringP("ligo-dir", "l", def.LigoDir, "LIGO source directory")
	fs.StringP("compile-out-dir", "o", def.CompileOutDir, "compiled contract directory")
	fs.StringP("client-dir", "t", def.ClientDir, "generated Go client directory")
	fs.String("client-package", def.ClientPackage, "package name of generated Go clients")
	return cmd
}

func (c *cli) specCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec <file>",
		Short: "Create a contract specification file",
		Long: fmt.Sprintf(`Create a contract specification file.

Files ending in .yaml or .yml are written as YAML, every other file as JSON.

  --kind          %s
  --admin         %s
  --minter        %s
  --minter-admin  %s`,
			strings.Join(feature.KindChoices(), " | "),
			strings.Join(feature.AdminChoices(), " | "),
			strings.Join(feature.MinterChoices(), " | "),
			strings.Join(feature.MinterAdminChoices(), " | "),
		),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := feature.Parse(feature.Tokens{
				Kind:        c.v.GetString("kind"),
				Admin:       c.v.GetString("admin"),
				Minter:      c.v.GetStringSlice("minter"),
				MinterAdmin: c.v.GetString("minter-admin"),
			})
			if err != nil {
				return err
			}

			err = spec.Save(args[0], sel)
			if err != nil {
				return err
			}
			c.log.Info("created contract specification", zap.String("path", args[0]), zap.Stringer("selection", sel))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringP("kind", "k", "", "core token model")
	fs.StringP("admin", "a", "", "contract administration model")
	fs.StringSliceP("minter", "m", nil, "minting capabilities")
	fs.String("minter-admin", "", "minting administration model, NO_MINTER when omitted")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("admin")
	return cmd
}

func (c *cli) contractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contract <spec> <name>",
		Short: "Generate the LIGO contract source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := spec.Load(args[0])
			if err != nil {
				return err
			}

			src, err := directive.Generate(sel)
			if err != nil {
				return err
			}
			return c.write(c.ws.SourcePath(args[1]), "contract source", []byte(src))
		},
	}
}

func (c *cli) storageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage <spec> <file>",
		Short: "Generate the initial contract storage as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := spec.Load(args[0])
			if err != nil {
				return err
			}

			p, err := c.storageParams()
			if err != nil {
				return err
			}

			s, err := storage.Assemble(sel, p)
			if err != nil {
				return err
			}

			b, err := marshalStorage(s)
			if err != nil {
				return err
			}
			return c.write(args[1], "initial storage", b)
		},
	}
	addStorageFlags(cmd)
	return cmd
}

func (c *cli) clientCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "client <spec> <name>",
		Short: "Generate a typed Go client for the contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := spec.Load(args[0])
			if err != nil {
				return err
			}

			src, err := client.Generate(sel, client.Options{Package: c.ws.ClientPackage})
			if err != nil {
				return err
			}
			return c.write(c.ws.ClientPath(args[1]), "client", src)
		},
	}
}

func (c *cli) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <spec> <name>",
		Short: "Generate the contract source, initial storage and Go client together",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := spec.Load(args[0])
			if err != nil {
				return err
			}

			p, err := c.storageParams()
			if err != nil {
				return err
			}

			arts, err := tzgen.Generate(cmd.Context(), sel, tzgen.Options{
				Storage: p,
				Client:  &client.Options{Package: c.ws.ClientPackage},
			})
			if err != nil {
				return err
			}

			b, err := marshalStorage(arts.Storage)
			if err != nil {
				return err
			}

			name := args[1]
			err = c.write(c.ws.SourcePath(name), "contract source", []byte(arts.Source))
			if err != nil {
				return err
			}
			err = c.write(c.ws.StoragePath(name), "initial storage", b)
			if err != nil {
				return err
			}
			return c.write(c.ws.ClientPath(name), "client", arts.Client)
		},
	}
	addStorageFlags(cmd)
	return cmd
}

func (c *cli) compileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <name>",
		Short: "Compile the LIGO contract source to Michelson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []compiler.Option{compiler.Logger(c.log)}
			if ligo := strings.Fields(c.v.GetString("ligo")); len(ligo) > 0 {
				opts = append(opts, compiler.Command(ligo[0], ligo[1:]...))
			}

			l, err := compiler.New(opts...)
			if err != nil {
				return err
			}

			name := args[0]
			return l.Compile(cmd.Context(), c.ws.SourcePath(name), c.v.GetString("entry"), c.ws.CompiledPath(name))
		},
	}

	fs := cmd.Flags()
	fs.StringP("entry", "e", "asset_main", "main entry point of the contract")
	fs.String("ligo", "", "command used to run LIGO, defaults to the "+compiler.DefaultImage+" docker image")
	return cmd
}

func (c *cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every valid feature selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, sel := range feature.AllSelections() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), sel)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func addStorageFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String("owner", "", "address of the initial contract admin")
	fs.String("minter", "", "address of the initial minter")
	fs.String("metadata-uri", "", "URI of the off chain contract metadata")
	fs.String("metadata-file", "", "JSON file holding the contract metadata to store on chain")
	fs.StringSlice("token", nil, "off chain token metadata as <token id>=<uri>, may be repeated")
	cmd.MarkFlagsMutuallyExclusive("metadata-uri", "metadata-file")
}

// InvalidTokenFlagError occurs when a --token value is not of
// the form <token id>=<uri>.
type InvalidTokenFlagError struct {
	Value string
}

// Error implements the [builtin.error] interface.
func (e InvalidTokenFlagError) Error() string {
	return fmt.Sprintf("invalid token %q: expected <token id>=<uri>", e.Value)
}

func (c *cli) storageParams() (storage.Params, error) {
	p := storage.Params{
		Owner:  c.v.GetString("owner"),
		Minter: c.v.GetString("minter"),
	}

	if uri := c.v.GetString("metadata-uri"); uri != "" {
		p.Metadata = storage.MetadataFromURI(uri)
	}
	if path := c.v.GetString("metadata-file"); path != "" {
		doc, err := ioutil.ReadFile(path)
		if err != nil {
			return storage.Params{}, err
		}
		p.Metadata, err = storage.MetadataFromJSON(doc)
		if err != nil {
			return storage.Params{}, err
		}
	}

	for _, tok := range c.v.GetStringSlice("token") {
		id, uri, ok := strings.Cut(tok, "=")
		if !ok || uri == "" {
			return storage.Params{}, InvalidTokenFlagError{Value: tok}
		}
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return storage.Params{}, InvalidTokenFlagError{Value: tok}
		}
		p.Tokens = append(p.Tokens, storage.OffChainTokenMetadata(storage.Nat(n), uri))
	}
	return p, nil
}

func marshalStorage(s storage.InitialStorage) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	err := enc.Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *cli) write(path, artifact string, b []byte) error {
	err := ioutil.WriteFile(path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	c.log.Info("generated "+artifact, zap.String("path", path))
	return nil
}
