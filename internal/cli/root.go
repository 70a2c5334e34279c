// Package cli implements the huntbook command-line interface: a root
// command with global flags and one command group per record kind.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/huntbook/internal/logging"
	"github.com/mesh-intelligence/huntbook/internal/paths"
	"github.com/mesh-intelligence/huntbook/internal/refdata"
	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/internal/sqlite"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// skipSetup marks commands that run without opening the record book.
const skipSetup = "huntbook/skip-setup"

// app carries the state shared by every command of one invocation.
type app struct {
	// Global flags.
	configDir string
	dataDir   string
	jsonMode  bool
	noRefresh bool

	// Set by setup.
	cfg      *viper.Viper
	logger   *slog.Logger
	closeLog func() error
	backend  *sqlite.Backend
	store    *sqlite.Store
	state    *session.State

	httpClient *http.Client
	now        func() time.Time
}

func newApp() *app {
	return &app{now: time.Now, state: session.New(), httpClient: refdata.NewHTTPClient()}
}

// NewRootCmd creates the top-level "huntbook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "huntbook",
		Short: "An offline record book for hunters",
		Long: "Huntbook keeps traps, catches, guns, ammunition, checklists and the\n" +
			"hunter's licences in a local database, with a species reference table\n" +
			"refreshed from a published CSV file.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" || cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVar(&a.noRefresh, "no-refresh", false, "skip the species reference download at start")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newTrapCmd(a))
	root.AddCommand(newCatchCmd(a))
	root.AddCommand(newGunCmd(a))
	root.AddCommand(newAmmoCmd(a))
	root.AddCommand(newGunLogCmd(a))
	root.AddCommand(newSpeciesCmd(a))
	root.AddCommand(newChecklistCmd(a))
	root.AddCommand(newProfileCmd(a))
	root.AddCommand(newSettingsCmd(a))
	root.AddCommand(newBackupCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	a := newApp()
	root := newRootCmd(a)
	err := root.Execute()
	if cerr := a.close(); err == nil && cerr != nil {
		err = systemError("close", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
	}
	return ExitCode(err)
}

// setup resolves directories, loads config, opens the log and attaches the
// backend. The species reference is downloaded once if it is still empty.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return systemError("resolve config dir", err)
	}
	a.cfg, err = loadConfig(configDir)
	if err != nil {
		return systemError("load config", err)
	}

	dataDir, err := paths.ResolveDataDir(a.dataDir, a.cfg.GetString(keyDataDir))
	if err != nil {
		return systemError("resolve data dir", err)
	}
	if err := paths.Ensure(dataDir); err != nil {
		return systemError("create data dir", err)
	}

	a.logger, a.closeLog, err = logging.NewFileLogger(a.logConfig(dataDir))
	if err != nil {
		return systemError("open log", err)
	}
	a.logger.Info("command started", "command", cmd.CommandPath(), "data_dir", dataDir)

	a.backend = sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := a.backend.Attach(ctx, types.Config{DataDir: dataDir}); err != nil {
		a.backend = nil
		var schemaErr *types.SchemaOpenError
		if errors.As(err, &schemaErr) {
			return &exitError{code: exitSysError, err: err}
		}
		return systemError("open record book", err)
	}
	a.store, err = a.backend.Store()
	if err != nil {
		return systemError("open record book", err)
	}

	if !a.noRefresh && cmd.Annotations[skipRefresh] == "" {
		a.refreshSpecies(cmd)
	}
	return nil
}

// skipRefresh marks commands that must not trigger the start-up download.
const skipRefresh = "huntbook/skip-refresh"

// logConfig builds the log file settings. A relative log.file is placed in
// the data directory.
func (a *app) logConfig(dataDir string) logging.Config {
	file := a.cfg.GetString(keyLogFile)
	if file == "" {
		file = logging.DefaultFileName
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(dataDir, file)
	}
	return logging.Config{
		File:       file,
		Level:      a.cfg.GetString(keyLogLevel),
		MaxSizeMB:  a.cfg.GetInt(keyLogMaxSize),
		MaxBackups: a.cfg.GetInt(keyLogMaxBackups),
	}
}

// importer builds the species importer from config.
func (a *app) importer() *refdata.Importer {
	return refdata.NewImporter(a.backend, a.cfg.GetString(keySpeciesURL),
		refdata.WithHTTPClient(a.httpClient),
		refdata.WithTimeout(a.cfg.GetDuration(keyFetchTimeout)),
		refdata.WithUserAgent("huntbook/"+Version),
		refdata.WithLogger(a.logger),
	)
}

// refreshSpecies loads the species reference if it is still empty and
// prints the outcome. Failures are reported, never returned: the record
// book works without reference data. Nothing happens without a URL.
func (a *app) refreshSpecies(cmd *cobra.Command) refdata.Status {
	if a.cfg.GetString(keySpeciesURL) == "" {
		return refdata.Status{Skipped: true, Message: "no species CSV URL configured"}
	}
	st := a.importer().Refresh(cmd.Context(), false)
	switch {
	case !st.OK:
		fmt.Fprintln(cmd.ErrOrStderr(), yellow("warning:"), st.Message)
	case !st.Skipped:
		fmt.Fprintln(cmd.ErrOrStderr(), green(st.Message))
	}
	return st
}

// close releases session handles, detaches the backend and closes the log.
func (a *app) close() error {
	a.state.Close()
	var errs []error
	if a.backend != nil {
		errs = append(errs, a.backend.Detach())
		a.backend, a.store = nil, nil
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
		a.closeLog = nil
	}
	return errors.Join(errs...)
}

// out returns the command's standard output.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
