package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"langengine/internal/config"
	"langengine/internal/daemon"
	"langengine/internal/engine"
	"langengine/internal/ipc"
	"langengine/internal/logging"
	"langengine/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	daemon     *daemon.Daemon
	socketPath string
	configPath string
}

// setupCLITestEnv writes a state-mode config backed by a TOML store and
// isolates HOME and LANGENGINE_* variables.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	clearLangEnv(t)
	opts = append([]testsupport.ConfigOption{testsupport.WithFileStore("settings.toml")}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	homeDir := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(homeDir, ".config", "langengine", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		socketPath: cfg.Paths.Socket,
		configPath: configPath,
	}
}

// startDaemon serves env.cfg over IPC for the rest of the test.
func (env *cliTestEnv) startDaemon(t *testing.T) {
	t.Helper()
	st := testsupport.MustOpenStore(t, env.cfg)
	logger := logging.NewNop()
	eng := engine.New(engine.Options{
		Store:     st,
		Default:   env.cfg.Language.Default,
		Validate:  env.cfg.Language.ValidateCodes,
		Logger:    logger,
		LookupEnv: func(string) (string, bool) { return "", false },
	})
	d, err := daemon.New(env.cfg, st, eng, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv, err := ipc.NewServer(ctx, env.socketPath, d, logger)
	if err != nil {
		cancel()
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping daemon-backed CLI test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("daemon Start: %v", err)
	}
	env.daemon = d

	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Stop()
	})
}

func clearLangEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "LANGENGINE_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[language]\ndefault = %q\nmode = %q\nvalidate_codes = %t\n\n[store]\nbackend = %q\npath = %q\n\n[paths]\nstate_dir = %q\nsocket = %q\n\n[logging]\nformat = \"json\"\nlevel = \"error\"\n",
		cfg.Language.Default,
		cfg.Language.Mode,
		cfg.Language.ValidateCodes,
		cfg.Store.Backend,
		cfg.Store.Path,
		cfg.Paths.StateDir,
		cfg.Paths.Socket,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
