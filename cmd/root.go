package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"bdl-cms/config"
)

type ctxKey string

const envKey ctxKey = "env"

// env is what every subcommand gets from the root command.
type env struct {
	cfg *config.Config
	log *logrus.Logger
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Configuration is loaded once before any
// subcommand runs.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bdl-cms",
		Short:         "Site et journal officiel du Bureau des Lycéens",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e := &env{cfg: cfg, log: config.NewLogger(cfg)}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey, e))
			return nil
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newTallyCmd())
	cmd.AddCommand(newUserAddCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getEnv(cmd *cobra.Command) *env {
	e, ok := cmd.Context().Value(envKey).(*env)
	if !ok {
		panic("command environment not initialized")
	}
	return e
}

// openDB connects and closes the pool when the command returns.
func openDB(e *env) (*gorm.DB, func(), error) {
	db, err := config.InitDB(e.cfg, e.log)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}
	return db, func() { _ = sqlDB.Close() }, nil
}
