// Package cli is the command-line display layer: each command loads the
// persisted state, runs one core operation, prints the result and exits.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/logging"
	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/storage"
)

// Version is printed by the version command and the root help text.
const Version = "1.0.0"

// Opener opens the backing store named in the config.
type Opener func(cfg config.Storage) (storage.Storage, error)

// app is the state shared by every command of one invocation.
type app struct {
	open Opener

	cfg     *config.Config
	kv      storage.Storage
	manager *records.Manager
}

// NewRootCmd builds the command tree. open is usually backend.Open.
func NewRootCmd(open Opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:   "records",
		Short: "manage the student list",
		Long: fmt.Sprintf(`records (v%s)

Add, edit, delete, search and page through student records stored in
the backing store named by the config file.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().String("config", os.Getenv("CONFIG_PATH"),
		"path to the configuration YAML file (default $CONFIG_PATH)")

	root.AddCommand(
		a.listCmd(),
		a.addCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.themeCmd(),
		versionCmd(),
	)
	return root
}

// setup loads the config, opens the store and loads state. Logs go to
// stderr so they never mix with command output.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Only warnings and errors: routine debug output belongs to the server.
	log := logging.NewWithLevel(cfg.Env, cmd.ErrOrStderr(), slog.LevelWarn)

	kv, err := a.open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.kv = kv

	store := records.NewStore(kv, log)
	store.Load(cmd.Context())
	a.manager = records.NewManager(store, log)
	return nil
}

// withStore wraps a command body so the store opened by setup is closed
// however the body returns, errors included.
func (a *app) withStore(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if cerr := a.teardown(); cerr != nil {
			return errors.Join(err, cerr)
		}
		return err
	}
}

func (a *app) teardown() error {
	if a.kv == nil {
		return nil
	}
	kv := a.kv
	a.kv = nil
	if err := kv.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// describe turns a core error into the text shown to the user.
func describe(err error) error {
	var ve *records.ValidationError
	switch {
	case errors.As(err, &ve):
		return errors.New(strings.Join(ve.Messages(), "\n"))
	case errors.Is(err, records.ErrStorage):
		return fmt.Errorf("change applied but not saved: %w", err)
	default:
		return err
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version number",
		// No config or storage needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "records v%s\n", Version)
		},
	}
}
