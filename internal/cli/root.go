package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javerbukh/jwebbinar-prep/internal/logger"
)

// Environment variables read as flag defaults.
const (
	EnvTarget = "IFUDERIVE_TARGET"
	EnvStore  = "IFUDERIVE_STORE"
	EnvDebug  = "IFUDERIVE_DEBUG"
	EnvLog    = "IFUDERIVE_LOG_FILE"
)

type rootOptions struct {
	debug   bool
	logJSON bool
	logFile string
	store   string
	cleanup func() error
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	cmd, opts := newRootCmd()
	if err := execute(cmd, opts); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd. PersistentPostRunE is skipped when RunE fails, so the
// logger is released here on that path.
func execute(cmd *cobra.Command, opts *rootOptions) error {
	err := cmd.Execute()
	if err != nil {
		if cerr := opts.release(); cerr != nil {
			return errors.Join(err, cerr)
		}
	}

	return err
}

func (o *rootOptions) release() error {
	cleanup := o.cleanup
	o.cleanup = nil

	if cleanup == nil {
		return nil
	}

	return cleanup()
}

// NewRootCmd builds the ifuderive command tree.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "ifuderive",
		Short:        "Derive black-hole and enclosed masses from IFU line measurements",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cleanup, err := logger.Setup(logger.Config{
				Debug:  opts.debug,
				JSON:   opts.logJSON,
				File:   opts.logFile,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			opts.cleanup = cleanup

			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.release()
		},
	}

	debug, _ := strconv.ParseBool(os.Getenv(EnvDebug))

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", debug, "enable debug logging (env "+EnvDebug+")")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "log as JSON instead of text")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", os.Getenv(EnvLog), "append logs to this file instead of stderr (env "+EnvLog+")")
	cmd.PersistentFlags().StringVar(&opts.store, "store", envOr(EnvStore, filepath.Join(".ifuderive", "runs.db")), "run history database (env "+EnvStore+")")

	cmd.AddCommand(
		deriveCmd(opts),
		validateCmd(),
		convertCmd(),
		historyCmd(opts),
		showCmd(opts),
	)

	return cmd, opts
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
