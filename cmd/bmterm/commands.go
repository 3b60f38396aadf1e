package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nikbrunner/bmterm/internal/config"
	"github.com/nikbrunner/bmterm/internal/logging"
	"github.com/nikbrunner/bmterm/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// errCommandFailed reports that an executed line produced an error block.
// The block itself has already been printed.
var errCommandFailed = errors.New("command failed")

// rootOptions are shared by every subcommand.
type rootOptions struct {
	configFile string
	v          *viper.Viper
}

// session is everything a subcommand needs once configuration is resolved.
type session struct {
	cfg      config.Config
	store    *storage.SQLiteStore
	logger   *slog.Logger
	logClose io.Closer
}

// New builds the bmterm command tree.
func New() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "bmterm",
		Short:         "Bookmark manager driven by a command prompt.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ~/.config/bmterm/config.json)")
	flags.String("db", "", "bookmark database path")
	flags.String("log-file", "", "log file path, empty to disable logging")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	bindFlag(opts.v, config.KeyDatabase, flags.Lookup("db"))
	bindFlag(opts.v, config.KeyLogFile, flags.Lookup("log-file"))
	bindFlag(opts.v, config.KeyLogLevel, flags.Lookup("log-level"))

	AddCommands(cmd, opts)
	return cmd
}

// AddCommands registers the subcommands on topLevel.
func AddCommands(topLevel *cobra.Command, opts *rootOptions) {
	addExec(topLevel, opts)
	addImport(topLevel, opts)
	addExport(topLevel, opts)
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag.Name, err))
	}
}

// open resolves configuration, then opens the log file and the database.
func (o *rootOptions) open() (*session, error) {
	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		return nil, err
	}

	logger, logClose, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStore(cfg.Database)
	if err != nil {
		logClose.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger.Debug("session opened", "database", cfg.Database, "default_folder", cfg.DefaultFolder)
	return &session{cfg: cfg, store: store, logger: logger, logClose: logClose}, nil
}

func (s *session) Close() error {
	return errors.Join(s.store.Close(), s.logClose.Close())
}
