package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Пароль можно передать флагом --password, иначе он спрашивается в терминале.
// Выданный сервером токен сохраняется, как после login.
//
// Пример использования:
//
//	taskmanager register --name Ann --email ann@example.com
func NewRegisterCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password, "Password: ")
			if err != nil {
				return err
			}

			resp, err := app.Client().Register(name, email, pw)
			if err != nil {
				return err
			}
			if err := app.SaveToken(resp.Token, resp.User.Email); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s (id %s), token saved\n", resp.User.Email, resp.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if empty)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
