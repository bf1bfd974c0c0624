package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя в систему.
//
// Команда получает токен и сохраняет его в локальный конфигурационный файл.
// При ошибке файл не трогается.
//
// Пример использования:
//
//	taskmanager login --email ann@example.com --password StrongPass123
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить токен)",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password, "Password: ")
			if err != nil {
				return err
			}

			resp, err := app.Client().Login(email, pw)
			if err != nil {
				return err
			}
			if err := app.SaveToken(resp.Token, resp.User.Email); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if empty)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
