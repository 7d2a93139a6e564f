// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the tzgen command line.
package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"syscall"

	"github.com/z5labs/tzgen/internal/try"
	"github.com/z5labs/tzgen/lifecycle"
	"github.com/z5labs/tzgen/telemetry"
	"github.com/z5labs/tzgen/workspace"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes the environment variables bound to command flags,
// e.g. TZGEN_LOG_LEVEL sets --log-level.
const EnvPrefix = "TZGEN"

const (
	configFlag       = "config"
	logLevelFlag     = "log-level"
	traceFlag        = "trace"
	otlpEndpointFlag = "otlp-endpoint"
)

type cli struct {
	v      *viper.Viper
	log    *zap.Logger
	ws     workspace.Config
	stdout io.Writer
	stderr io.Writer
}

// Run executes the tzgen command line with args. Failures are logged to
// stderr before being returned.
func Run(ctx context.Context, stdout, stderr io.Writer, args ...string) (err error) {
	c := &cli{
		v:      viper.New(),
		log:    newLogger(stderr, zapcore.ErrorLevel),
		stdout: stdout,
		stderr: stderr,
	}
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	lc := &lifecycle.Context{}
	ctx = lifecycle.NewContext(ctx, lc)
	defer func() {
		err = errors.Join(err, lc.PostRun().Run(ctx))
	}()

	cmd := c.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err = c.execute(ctx, cmd)
	if err != nil {
		c.log.Error("command failed", zap.Error(err))
	}
	return err
}

func (c *cli) execute(ctx context.Context, cmd *cobra.Command) (err error) {
	defer try.Recover(&err)
	return cmd.ExecuteContext(ctx)
}

func (c *cli) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "tzgen",
		Short:             "Generate FA2 token contracts from composable features",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	fs := cmd.PersistentFlags()
	fs.String(configFlag, workspace.DefaultFileName, "workspace configuration file")
	fs.String(logLevelFlag, "info", "minimum log level: debug, info, warn or error")
	fs.String(traceFlag, telemetry.None.String(), "trace exporter: none, stdout or otlp")
	fs.String(otlpEndpointFlag, "", "host:port of the OTLP collector used by --trace otlp")

	cmd.AddCommand(
		c.initCommand(),
		c.specCommand(),
		c.contractCommand(),
		c.storageCommand(),
		c.clientCommand(),
		c.generateCommand(),
		c.compileCommand(),
		c.listCommand(),
	)
	return cmd
}

// MissingLifecycleError occurs when a command runs without a lifecycle
// [lifecycle.Context] in its [context.Context].
type MissingLifecycleError struct{}

// Error implements the [builtin.error] interface.
func (MissingLifecycleError) Error() string {
	return "command context carries no lifecycle"
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	lc, ok := lifecycle.FromContext(cmd.Context())
	if !ok {
		return MissingLifecycleError{}
	}

	err := c.v.BindPFlags(cmd.Flags())
	if err != nil {
		return err
	}

	var lvl zapcore.Level
	err = lvl.UnmarshalText([]byte(c.v.GetString(logLevelFlag)))
	if err != nil {
		return err
	}
	c.log = newLogger(c.stderr, lvl)
	lc.OnPostRun(lifecycle.Close(func() error {
		return ignoreUnsyncable(c.log.Sync())
	}))

	var exp telemetry.Exporter
	err = exp.UnmarshalText([]byte(c.v.GetString(traceFlag)))
	if err != nil {
		return err
	}
	tp, err := telemetry.NewProvider(cmd.Context(), telemetry.Config{
		Exporter: exp,
		Endpoint: c.v.GetString(otlpEndpointFlag),
		Writer:   c.stderr,
	})
	if err != nil {
		return err
	}
	tp.Install()
	lc.OnPostRun(lifecycle.HookFunc(tp.Shutdown))

	c.ws, err = workspace.Load(c.v.GetString(configFlag))
	if err != nil {
		return err
	}
	c.log.Debug("loaded workspace",
		zap.String("ligo_dir", c.ws.LigoDir),
		zap.String("compile_out_dir", c.ws.CompileOutDir),
		zap.String("client_dir", c.ws.ClientDir),
	)
	return nil
}

func newLogger(w io.Writer, lvl zapcore.Level) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core)
}

// ignoreUnsyncable drops the error returned when fsyncing a terminal or pipe.
func ignoreUnsyncable(err error) error {
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
