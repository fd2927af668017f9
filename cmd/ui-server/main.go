package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/solar-site/internal/config"
	"github.com/Its-donkey/solar-site/internal/ui/server"
	"github.com/Its-donkey/solar-site/logging"
)

type runFunc func(ctx context.Context, cfg *config.Config) error

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(serve).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ui-server: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ui-server",
		Short:         "Serve the solar landing page",
		Long:          `Renders the landing page from templates and content, and serves the stylesheet and wasm bundle it loads.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.String("config", "solar.yml", "path to the YAML config file (optional)")
	f.String("listen", "", "address to serve the landing page")
	f.String("site-name", "", "site name shown in the header and footer")
	f.String("templates", "", "path to the html/template files")
	f.String("assets", "", "path where styles.css, wasm_exec.js and main.wasm are located")
	f.String("content", "", "path to the content YAML file")
	f.String("log-level", "", "DEBUG, INFO, WARN or ERROR")
	f.String("log-file", "", "also write logs to this file, rotated by size")
	f.Bool("watch", false, "reload templates and content when they change")
	return cmd
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	strs := map[string]*string{
		"listen":    &cfg.Listen,
		"site-name": &cfg.SiteName,
		"templates": &cfg.TemplatesDir,
		"assets":    &cfg.AssetsDir,
		"content":   &cfg.ContentFile,
		"log-level": &cfg.LogLevel,
		"log-file":  &cfg.LogFile,
	}
	flags := cmd.Flags()
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	if flags.Changed("watch") {
		v, err := flags.GetBool("watch")
		if err != nil {
			return err
		}
		cfg.Watch = v
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	writers := []io.Writer{os.Stdout}
	if cfg.LogFile != "" {
		fw, err := logging.NewFileWriter(filepath.Dir(cfg.LogFile), filepath.Base(cfg.LogFile), 10, 5)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer fw.Close()
		writers = append(writers, fw)
	}
	logger := logging.New(cfg.SiteName, level, writers...)
	defer func() { _ = logger.Sync() }()

	return server.Run(ctx, server.Options{
		Listen:       cfg.Listen,
		SiteName:     cfg.SiteName,
		TemplatesDir: cfg.TemplatesDir,
		AssetsDir:    cfg.AssetsDir,
		ContentFile:  cfg.ContentFile,
		Watch:        cfg.Watch,
		Logger:       logger,
	})
}
