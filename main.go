package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	build := []procConfig{
		{
			Name: "build-ui-wasm",
			Args: []string{"go", "build", "-o", "ui/main.wasm", "./cmd/ui-wasm"},
			Env:  []string{"GOOS=js", "GOARCH=wasm"},
		},
	}
	serve := []procConfig{
		{
			Name: "ui",
			Args: []string{
				"go", "run", "./cmd/ui-server",
				"--listen", "127.0.0.1:4173",
				"--assets", "ui",
				"--templates", "ui/templates",
				"--content", "ui/content.yaml",
				"--watch",
			},
		},
	}

	if err := runSequential(ctx, build); err != nil {
		fail(err)
	}
	if err := copyWasmExec(ctx, "ui"); err != nil {
		fail(err)
	}
	if err := runAll(ctx, serve); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "solar-site exited with error: %v\n", err)
	os.Exit(1)
}

func command(ctx context.Context, cfg procConfig) *exec.Cmd {
	cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if cfg.Dir != "" {
		cmd.Dir = cfg.Dir
	}
	if len(cfg.Env) > 0 {
		cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
	}
	return cmd
}

// runSequential runs each step to completion, stopping at the first failure.
func runSequential(ctx context.Context, procs []procConfig) error {
	for _, cfg := range procs {
		if err := command(ctx, cfg).Run(); err != nil {
			return fmt.Errorf("%s: %w", cfg.Name, err)
		}
	}
	return nil
}

// runAll runs procs side by side until one fails or ctx is cancelled.
func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return errors.New("no processes configured")
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, cfg := range procs {
		cfg := cfg
		g.Go(func() error {
			cmd := command(gctx, cfg)
			cmd.WaitDelay = 2 * time.Second
			if err := cmd.Start(); err != nil {
				return fmt.Errorf("%s start: %w", cfg.Name, err)
			}
			if err := cmd.Wait(); err != nil {
				// If the context was cancelled, treat the exit as expected.
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// copyWasmExec copies the toolchain's wasm_exec.js loader next to main.wasm.
func copyWasmExec(ctx context.Context, dir string) error {
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("go env GOROOT: %w", err)
	}
	root := strings.TrimSpace(string(out))
	var data []byte
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		if data, err = os.ReadFile(filepath.Join(root, rel)); err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("read wasm_exec.js: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "wasm_exec.js"), data, 0o644)
}
