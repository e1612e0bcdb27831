package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"simpleblog/app/config"
	"simpleblog/app/services"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the simpleblog command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "simpleblog",
		Short:         "A small blog with comments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yml when present)")

	root.AddCommand(
		newServeCommand(),
		newInitCommand(),
		newHashPasswordCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and returns an exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the blog service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunAppServer(ctx, cfg, logger)
		},
	}
}

func newInitCommand() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the post and comment tables",
		Long: `Create the post and comment tables when they are missing.

With --seed a few sample posts and comments are added as well; only use it
on an empty database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			return initDatabase(cmd, cfg, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert sample posts and comments")
	return cmd
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long: `Print a bcrypt hash for ADMIN_PASSWORD_HASH. The password is read from
the first argument, or from the first line of standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, args)
			if err != nil {
				return err
			}
			hash, err := services.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "simpleblog version %s\n", Version)
		},
	}
}

func initDatabase(cmd *cobra.Command, cfg *config.Config, seed bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateSchema(ctx); err != nil {
		return err
	}
	if seed {
		if err := db.Seed(ctx, time.Now().UTC()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database initialized with sample posts")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Database initialized successfully")
	return nil
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no password given")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
