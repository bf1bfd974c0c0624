package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMeCmd создаёт команду, показывающую владельца сохранённого токена.
func NewMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Показать текущего пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}

			resp, err := app.Client().Me(token)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "name=%s\nemail=%s\n", resp.User.Name, resp.User.Email)
			return nil
		},
	}
}
