package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/AntonStoeckl/detached-state-go/cmd/snapshotctl/internal/logging"
	"github.com/AntonStoeckl/detached-state-go/cmd/snapshotctl/internal/settings"
	"github.com/AntonStoeckl/detached-state-go/example/button"
	"github.com/AntonStoeckl/detached-state-go/optional"
	"github.com/AntonStoeckl/detached-state-go/snapshot"
	"github.com/AntonStoeckl/detached-state-go/snapshot/caretaker"
)

const (
	flagConfig   = "config"
	flagDSN      = "dsn"
	flagAdapter  = "adapter"
	flagTable    = "table"
	flagLogLevel = "log-level"
	flagOwner    = "owner"
)

// ErrOwnerRequired is returned when a command is run without --owner.
var ErrOwnerRequired = errors.New("--owner must not be empty")

// StoreOpener connects the snapshot store described by s. The returned close function releases it.
type StoreOpener func(ctx context.Context, s settings.Settings, logger snapshot.Logger) (caretaker.SnapshotStore, func(), error)

type rootFlags struct {
	configPath string
	dsn        string
	adapter    string
	tableName  string
	logLevel   string
	owner      string
}

// app is what every subcommand works with once the settings are resolved.
type app struct {
	caretaker *caretaker.Caretaker
	logger    logging.Logger
	owner     string
	close     func()
}

// Execute runs snapshotctl against PostgreSQL and exits with non-zero status on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := NewRootCommand(OpenPostgresStore).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// NewRootCommand builds the snapshotctl command tree on top of openStore.
func NewRootCommand(openStore StoreOpener) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "snapshotctl",
		Short: "Checkpoint and roll back an example button.",
		Long: `Checkpoint and roll back the state of an example button in a PostgreSQL snapshot store.

Settings are resolved from built-in defaults, the YAML settings file, the SNAPSHOTCTL_DSN and
SNAPSHOTCTL_ADAPTER environment variables and finally the command line flags, later sources win.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, flagConfig, "c", settings.DefaultFilename, "path to settings file")
	root.PersistentFlags().StringVar(&flags.dsn, flagDSN, "", "PostgreSQL connection string")
	root.PersistentFlags().StringVar(&flags.adapter, flagAdapter, "", "database adapter: pgx.pool, sql.db or sqlx.db")
	root.PersistentFlags().StringVar(&flags.tableName, flagTable, "", "snapshot table name")
	root.PersistentFlags().StringVar(&flags.logLevel, flagLogLevel, "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVarP(&flags.owner, flagOwner, "o", "", "owner id of the button")

	setup := func(cmd *cobra.Command) (*app, error) {
		return newApp(cmd, flags, openStore)
	}

	root.AddCommand(
		newCheckpointCommand(setup),
		newRollbackCommand(setup),
		newHistoryCommand(setup),
		newForgetCommand(setup),
	)

	return root
}

func newApp(cmd *cobra.Command, flags *rootFlags, openStore StoreOpener) (*app, error) {
	if flags.owner == "" {
		return nil, ErrOwnerRequired
	}

	resolved, err := resolveSettings(cmd, flags)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(resolved.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logging.New(level, zapcore.AddSync(cmd.ErrOrStderr()))

	store, closeStore, err := openStore(cmd.Context(), resolved, logger)
	if err != nil {
		return nil, err
	}

	registry := snapshot.NewRegistry()
	if err = button.Register(registry); err != nil {
		closeStore()
		return nil, err
	}

	c, err := caretaker.New(store, registry, caretaker.WithLogger(logger))
	if err != nil {
		closeStore()
		return nil, err
	}

	return &app{
		caretaker: c,
		logger:    logger,
		owner:     flags.owner,
		close: func() {
			closeStore()
			_ = logger.Sync() // syncing stderr fails on some platforms
		},
	}, nil
}

func resolveSettings(cmd *cobra.Command, flags *rootFlags) (settings.Settings, error) {
	changed := cmd.Flags().Changed

	// an explicitly empty --config disables the settings file
	var fileLayer settings.Layer
	if !changed(flagConfig) || flags.configPath != "" {
		var err error
		if fileLayer, err = settings.FromFile(flags.configPath, changed(flagConfig)); err != nil {
			return settings.Settings{}, err
		}
	}

	flagLayer := settings.Layer{
		DSN:       optional.Of(flags.dsn, changed(flagDSN)),
		Adapter:   optional.Of(flags.adapter, changed(flagAdapter)),
		TableName: optional.Of(flags.tableName, changed(flagTable)),
		LogLevel:  optional.Of(flags.logLevel, changed(flagLogLevel)),
	}

	return settings.Resolve(
		settings.Defaults(),
		fileLayer,
		settings.FromEnv(os.LookupEnv),
		flagLayer,
	)
}
