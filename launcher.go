//go:build ignore

// Локальный запуск: сервер в фоне, затем сборка CLI-клиента.
//
//	go run launcher.go
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"
)

const healthURL = "http://127.0.0.1:7000/"

func main() {
	fmt.Println("Запуск task manager...")

	clientName := "taskmanager"
	if runtime.GOOS == "windows" {
		clientName = "taskmanager.exe"
	}

	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr
	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	if !waitReady(healthURL, 30*time.Second) {
		fmt.Println("Сервер не ответил на GET / за 30s")
		_ = server.Process.Kill()
		return
	}

	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/taskmanager")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
	}

	fmt.Println("Сервер запущен")
	fmt.Printf("Данный терминал не закрывай. Открой новый и запускай: ./%s register --name ... --email ...\n", clientName)

	_ = server.Wait()
}

// waitReady опрашивает корневой эндпоинт, пока он не ответит "API WORKING".
func waitReady(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		res, err := http.Get(url)
		if err == nil {
			body, _ := io.ReadAll(res.Body)
			res.Body.Close()
			if res.StatusCode == http.StatusOK && string(body) == "API WORKING" {
				return true
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return false
}
