package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/go-playground/validator.v9"

	"bdl-cms/models"
	"bdl-cms/repositories"
	"bdl-cms/services"
)

func newUserAddCmd() *cobra.Command {
	var req models.RegisterRequest
	var role string

	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Create an account with any role",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.New().Struct(req); err != nil {
				return err
			}
			r, err := models.ParseRole(role)
			if err != nil {
				return err
			}
			req.Role = &r

			e := getEnv(cmd)
			db, closeDB, err := openDB(e)
			if err != nil {
				return err
			}
			defer closeDB()

			// The command line acts with admin rights.
			operator := models.NewSession(0, "cli", models.Standard(models.RoleAdmin))

			svc := services.NewAuthService(repositories.NewUserRepository(db))
			res, err := svc.Register(cmd.Context(), req, operator)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s) with role %s\n",
				res.User.ID, res.User.Username, res.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "account name")
	cmd.Flags().StringVar(&req.Email, "email", "", "login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", "eleve", `eleve, membre, bureau, admin or "custom:<label>"`)
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
