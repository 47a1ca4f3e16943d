package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bdl-cms/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd)
			db, closeDB, err := openDB(e)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := config.Migrate(db); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
