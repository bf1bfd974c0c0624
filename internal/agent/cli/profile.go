package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProfileCmd создаёт команду изменения имени и email.
//
// Сервер ожидает оба поля, поэтому оба флага обязательны.
func NewProfileCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Изменить имя и email",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}

			resp, err := app.Client().UpdateProfile(token, name, email)
			if err != nil {
				return err
			}
			if err := app.SaveToken(token, resp.User.Email); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "profile updated: name=%s email=%s\n", resp.User.Name, resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
