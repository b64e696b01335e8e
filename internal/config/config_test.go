package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func load(t *testing.T, args ...string) *Config {
	t.Helper()
	fs := flag.NewFlagSet("totui", flag.ContinueOnError)
	cfg, err := Load(fs, args)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := load(t)
	if filepath.Base(cfg.TodoFile) != DefaultTodoFile {
		t.Errorf("TodoFile: got %s, want %s", cfg.TodoFile, DefaultTodoFile)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers: got %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %s, want %s", cfg.LogLevel, DefaultLogLevel)
	}
	if !filepath.IsAbs(cfg.TodoFile) {
		t.Errorf("TodoFile not absolute: %s", cfg.TodoFile)
	}
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "todo_file = \"tasks.txt\"\nworkers = 4\nlog_level = \"debug\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".totui.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg := load(t)
	if filepath.Base(cfg.TodoFile) != "tasks.txt" {
		t.Errorf("TodoFile: got %s, want tasks.txt", cfg.TodoFile)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers: got %d, want 4", cfg.Workers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s, want debug", cfg.LogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "workers = 4\n"
	if err := os.WriteFile(filepath.Join(dir, ".totui.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("TOTUI_WORKERS", "8")

	cfg := load(t)
	if cfg.Workers != 8 {
		t.Errorf("Workers: got %d, want 8", cfg.Workers)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TOTUI_LOG_LEVEL", "warn")

	cfg := load(t, "-log-level", "error", "-file", "other.txt")
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %s, want error", cfg.LogLevel)
	}
	if filepath.Base(cfg.TodoFile) != "other.txt" {
		t.Errorf("TodoFile: got %s, want other.txt", cfg.TodoFile)
	}
}

func TestInvalidEnvWorkersIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TOTUI_WORKERS", "not-a-number")

	cfg := load(t)
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers: got %d, want %d", cfg.Workers, DefaultWorkers)
	}
}

func TestFinalizeClampsWorkers(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := load(t, "-workers", "0")
	if cfg.Workers != 1 {
		t.Errorf("Workers: got %d, want 1", cfg.Workers)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/todo.txt", want: filepath.Join(home, "todo.txt")},
		{in: "plain.txt", want: "plain.txt"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
