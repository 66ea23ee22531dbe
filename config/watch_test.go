package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: dev\n"), 0o644))

	updates := make(chan AppConfig, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		w := Watcher{Path: path, Cooldown: 10 * time.Millisecond}
		_ = w.Start(ctx, func(cfg AppConfig) {
			select {
			case updates <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register before the write.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("env: prod\nsim:\n  seed: 5\n"), 0o644))

	select {
	case cfg := <-updates:
		require.Equal(t, "prod", cfg.Env)
		require.Equal(t, int64(5), cfg.Sim.Seed)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed after config write")
	}

	cancel()
	<-done
}

func TestWatcher_SkipsInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: dev\n"), 0o644))

	updates := make(chan AppConfig, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		w := Watcher{Path: path, Cooldown: time.Millisecond}
		_ = w.Start(ctx, func(cfg AppConfig) { updates <- cfg })
	}()

	time.Sleep(100 * time.Millisecond)
	// Invalid config must be skipped without surfacing through onUpdate.
	require.NoError(t, os.WriteFile(path, []byte("env: dev\nsim:\n  volatility: -1\n"), 0o644))
	time.Sleep(300 * time.Millisecond)

	select {
	case cfg := <-updates:
		t.Fatalf("invalid config delivered: %+v", cfg)
	default:
	}
}
