package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"roster/internal/config"
	"roster/internal/domain/commands"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/storage"
	"roster/pkg/logger"
)

type openFunc func(ctx context.Context, cfg config.Config) (storage.Backend, error)

// app is the state shared by subcommands for one invocation.
type app struct {
	open    openFunc
	backend storage.Backend

	backendName string
	verbose     bool
}

// run executes the CLI with args. The backend opened for the command is closed
// before returning, whether or not the command succeeded.
func run(ctx context.Context, open openFunc, args []string, stdout, stderr io.Writer) (err error) {
	a := &app{open: open}
	defer func() {
		if cerr := a.close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed teams and run roster commands",
		Long: `seed talks directly to the storage backend selected by STORAGE_BACKEND
(or --backend). Use it to load teams before starting the server, or to create
a player without going through the HTTP API.`,
		PersistentPreRunE: a.connect,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&a.backendName, "backend", "", "Storage backend override (env: STORAGE_BACKEND)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(newTeamsCmd(a))
	rootCmd.AddCommand(newCreatePlayerCmd(a))

	return rootCmd
}

func (a *app) connect(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.backendName != "" {
		cfg.Backend = a.backendName
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:       level,
		Development: true,
		OutputPaths: []string{"stderr"},
		Backend:     cfg.Backend,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	ctx := logger.WithLogger(cmd.Context(), log)
	cmd.SetContext(ctx)

	a.backend, err = a.open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	return nil
}

func (a *app) close() error {
	if a.backend == nil {
		return nil
	}
	b := a.backend
	a.backend = nil
	if err := b.Close(); err != nil {
		return fmt.Errorf("close backend: %w", err)
	}
	return nil
}

func newTeamsCmd(a *app) *cobra.Command {
	var entries []string

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Insert or replace teams",
		Example: `  seed teams --team T1:Lions:1 --team T2:Tigers:0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := config.ParseTeams(entries)
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				return fmt.Errorf("at least one --team is required")
			}
			if err := storage.Seed(cmd.Context(), a.backend, teams); err != nil {
				return err
			}
			cmd.Printf("seeded %d team(s)\n", len(teams))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&entries, "team", nil, "Team as ID:NAME:MISSING (repeatable)")

	return cmd
}

func newCreatePlayerCmd(a *app) *cobra.Command {
	var name, teamID string

	cmd := &cobra.Command{
		Use:   "create-player",
		Short: "Create one player through the command executor",
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := commands.NewCreatePlayer(a.backend, a.backend).
				Execute(cmd.Context(), roster.PlayerInput{Name: name, TeamID: teamID})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(player)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&teamID, "team", "", "Team id (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}
