// Package cli реализует командный интерфейс (CLI) клиента task manager.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку и сохранение локального токена;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/agent/config"
)

// DefaultServerURL — адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:7000"

// ErrNotLoggedIn — команда требует токен, а его нет.
var ErrNotLoggedIn = errors.New("not logged in: run `taskmanager login` first")

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:7000").
	ServerURL string
	// Insecure отключает проверку TLS-сертификата (самоподписанный dev-сертификат).
	Insecure bool

	// CredsPath — путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds — загруженные учётные данные. Может быть nil до PersistentPreRunE.
	Creds *config.Credentials
}

// Client создаёт API-клиент с настройками приложения.
func (a *App) Client() *api.Client {
	if a.Insecure {
		return NewAPIClient(a.ServerURL, api.WithInsecureTLS())
	}
	return NewAPIClient(a.ServerURL)
}

// Token возвращает сохранённый токен или ErrNotLoggedIn.
func (a *App) Token() (string, error) {
	if !a.Creds.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	return a.Creds.Token, nil
}

// SaveToken запоминает токен и пишет его в файл.
func (a *App) SaveToken(token, email string) error {
	if a.Creds == nil {
		a.Creds = &config.Credentials{}
	}
	a.Creds.Token = token
	a.Creds.Email = email
	return config.Save(a.CredsPath, a.Creds)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE определяется путь к файлу учётных данных и загружается токен.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "taskmanager",
		Short: "Task manager CLI — аккаунт пользователя",
		Long: `Task manager CLI.

Команды:
  register  Регистрация нового пользователя (сохраняет токен)
  login     Логин (сохраняет токен)
  me        Показать текущего пользователя
  profile   Изменить имя и email
  password  Сменить пароль
  logout    Удалить сохранённый токен
  version   Версия и дата сборки

Примеры:
  taskmanager register --name Ann --email ann@example.com
  taskmanager login --email ann@example.com
  taskmanager me
  taskmanager profile --name Anna --email anna@example.com
  taskmanager password
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "creds", "", "credentials file (default ~/.taskmanager/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewProfileCmd(app))
	cmd.AddCommand(NewPasswordCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewVersionCmd(app, buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
