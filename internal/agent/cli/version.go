package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd печатает версию клиента и дату сборки (из -ldflags).
//
// С --server дополнительно показывает адрес сервера, к которому ходят остальные
// команды. Сервер при этом не опрашивается, поэтому команда работает без сети.
func NewVersionCmd(app *App, buildVersion, buildDate string) *cobra.Command {
	var showServer bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Версия клиента task manager",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "taskmanager %s (built %s)\n", buildVersion, buildDate)
			if showServer {
				fmt.Fprintf(out, "server %s\n", app.ServerURL)
			}
		},
	}

	cmd.Flags().BoolVar(&showServer, "server-url", false, "also print the configured server URL")

	return cmd
}
