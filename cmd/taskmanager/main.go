// Package main содержит точку входа CLI-клиента task manager.
//
// Версия и дата сборки прокидываются через -ldflags:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=$(date +%F)" ./cmd/taskmanager
package main

import "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/agent/cli"

var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
