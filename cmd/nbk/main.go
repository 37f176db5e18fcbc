package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"nbk/book"
	"nbk/common"
	"nbk/config"
	"nbk/misc"
	"nbk/state"
	"nbk/toc"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

// exitCode distinguishes failure classes for scripting: 2 when the TOC
// itself cannot be loaded, 3 when strict checking found unresolved
// references, 1 for everything else.
func exitCode(err error) int {
	var (
		parseErr      *toc.ParseError
		schemaErr     *toc.SchemaError
		unresolvedErr *toc.UnresolvedReferenceError
	)
	switch {
	case err == nil:
		return 0
	case errors.As(err, &parseErr), errors.As(err, &schemaErr):
		return 2
	case errors.As(err, &unresolvedErr):
		return 3
	}
	return 1
}

func main() {

	// allow graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	listFormats := []string{common.ExportFmtText.String(), common.ExportFmtJson.String(), common.ExportFmtYaml.String()}
	fileFormats := []string{common.ExportFmtNcx.String(), common.ExportFmtNav.String(), common.ExportFmtJson.String()}

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "navigation toolchain for notebook-based books",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "check",
				Usage:        "Validates book TOC references against content",
				OnUsageError: usageErrorHandler,
				Action:       book.Check,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Aliases: []string{"s"}, Usage: "treat unresolved references as fatal"},
					&cli.BoolFlag{Name: "orphans", Aliases: []string{"o"}, Usage: "report content documents the TOC never references"},
					&cli.BoolFlag{Name: "assets", Aliases: []string{"a"}, Usage: "also check book logo and static stylesheets"},
				},
				ArgsUsage: "BOOK",
				CustomHelpTemplate: fmt.Sprintf(`%s
BOOK:
    path to the book directory (the one holding the TOC file), if absent - current working directory
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "nav",
				Usage:        "Prints flattened book navigation",
				OnUsageError: usageErrorHandler,
				Action:       book.Nav,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Value: common.ExportFmtText.String(),
						Usage: "listing output `TYPE` (supported types: " + strings.Join(listFormats, ", ") + ")"},
					&cli.BoolFlag{Name: "blurbs", Aliases: []string{"b"}, Usage: "include a short excerpt from each content document"},
				},
				ArgsUsage: "BOOK",
				CustomHelpTemplate: fmt.Sprintf(`%s
BOOK:
    path to the book directory (the one holding the TOC file), if absent - current working directory
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "export",
				Usage:        "Writes renderer-facing navigation document",
				OnUsageError: usageErrorHandler,
				Action:       book.Export,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Value: common.ExportFmtNcx.String(),
						Usage: "export output `TYPE` (supported types: " + strings.Join(fileFormats, ", ") + ")"},
					&cli.BoolFlag{Name: "validate", Aliases: []string{"v"}, Usage: "refuse to export when TOC references do not resolve"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				},
				ArgsUsage: "BOOK [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
BOOK:
    path to the book directory (the one holding the TOC file), if absent - current working directory

DESTINATION:
    always a path, output file name and extension will be derived from other parameters
    if absent - current working directory
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(exitCode(err))
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
