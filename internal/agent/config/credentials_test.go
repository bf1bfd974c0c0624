package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/agent/config"
)

func TestDefaultPath_ReturnsPathInHomeDir(t *testing.T) {
	p, err := config.DefaultPath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".taskmanager", "credentials.json"), p)
}

func TestLoad_FileNotExists_ReturnsEmptyCredentials(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	require.NoError(t, err)
	require.NotNil(t, creds)
	require.False(t, creds.LoggedIn())
}

func TestLoad_BadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "credentials.json") // вложенная директория

	want := &config.Credentials{Token: "tok-1", Email: "ann@mail.com"}
	require.NoError(t, config.Save(p, want))

	got, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.True(t, got.LoggedIn())

	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), st.Mode().Perm())
	}
}

func TestRemove(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, config.Save(p, &config.Credentials{Token: "tok"}))

	require.NoError(t, config.Remove(p))
	_, err := os.Stat(p)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, config.Remove(p))
}
