package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPasswordCmd создаёт команду смены пароля.
//
// Пароли, не переданные флагами, спрашиваются в терминале.
// Сохранённый токен остаётся рабочим и после смены.
func NewPasswordCmd(app *App) *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Сменить пароль",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}

			cur, err := passwordOrPrompt(cmd, current, "Current password: ")
			if err != nil {
				return err
			}
			nw, err := passwordOrPrompt(cmd, next, "New password: ")
			if err != nil {
				return err
			}

			resp, err := app.Client().UpdatePassword(token, cur, nw)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "current password (prompted if empty)")
	cmd.Flags().StringVar(&next, "new", "", "new password (prompted if empty)")

	return cmd
}
