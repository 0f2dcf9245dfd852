package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/goliatone/go-postformat"
	"github.com/goliatone/go-postformat/internal/config"
	"github.com/goliatone/go-postformat/internal/logging"
	"github.com/goliatone/go-postformat/pkg/clipboard"
	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/renderers/terminal"
	"github.com/goliatone/go-postformat/pkg/renderers/tui"
	"github.com/goliatone/go-postformat/pkg/session"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	contentType := flag.String("type", "", "content type to start with (skips the type prompt)")
	output := flag.String("output", "", "write the canonical text to this file on exit")
	htmlOut := flag.String("html", "", "write the HTML preview page to this file on exit")
	registryPath := flag.String("registry", "", "extra content-type definitions (file or directory)")
	logLevel := flag.String("log-level", "", "log level override")
	noClipboard := flag.Bool("no-clipboard", false, "keep copies in memory instead of the system clipboard")
	width := flag.Int("width", 72, "preview width in columns")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *registryPath != "" {
		cfg.Registry.Path = *registryPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, options{
		contentType: *contentType,
		output:      *output,
		html:        *htmlOut,
		noClipboard: *noClipboard,
		width:       *width,
	}); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("postformat failed", zap.Error(err))
		os.Exit(1)
	}
}

type options struct {
	contentType string
	output      string
	html        string
	noClipboard bool
	width       int
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, opts options) error {
	registry, err := contenttype.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		return fmt.Errorf("load content types: %w", err)
	}

	var writer clipboard.Writer = clipboard.SystemWriter{}
	if opts.noClipboard || !(clipboard.SystemWriter{}).Available() {
		writer = &clipboard.MemoryWriter{}
	}

	s, err := postformat.NewSession(
		postformat.WithRegistry(registry),
		postformat.WithClipboard(writer),
		postformat.WithAckDelay(cfg.Clipboard.AckDelay),
		postformat.WithDecoder(session.NewDataURIDecoder(int(cfg.Media.MaxBytes))),
		postformat.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	editor := tui.New(tui.WithRegistry(registry), tui.WithLogger(logger), tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}))
	preview := terminal.New(terminal.WithWidth(opts.width))
	state := s.State()

	if opts.contentType != "" {
		if err := state.SelectType(opts.contentType); err != nil {
			return err
		}
		err = editor.EditFields(ctx, state)
	} else {
		err = editor.Run(ctx, state)
	}
	if err != nil {
		return err
	}

loop:
	for {
		action, err := editor.Menu(ctx, s.CopyLabel())
		if err != nil {
			return err
		}
		switch action {
		case tui.ActionPreview:
			if err := state.Wait(ctx); err != nil {
				return err
			}
			reportMediaErrors(ctx, editor, state)
			fmt.Println(preview.Render(s.Preview(), s.Copied()))
		case tui.ActionCopy:
			if err := state.Wait(ctx); err != nil {
				return err
			}
			if err := s.Copy(ctx); err != nil {
				_ = editor.Info(ctx, err.Error())
				continue
			}
			_ = editor.Info(ctx, clipboard.LabelCopied)
		case tui.ActionEdit:
			if err := editor.EditFields(ctx, state); err != nil {
				return err
			}
		case tui.ActionChangeType:
			if err := editor.Run(ctx, state); err != nil {
				return err
			}
		default:
			break loop
		}
	}

	if err := state.Wait(ctx); err != nil {
		return err
	}
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(s.Canonical()), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Post written to %s\n", opts.output)
	}
	if opts.html != "" {
		page, err := s.PreviewPage()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.html, []byte(page), 0o644); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		fmt.Printf("Preview written to %s\n", opts.html)
	}
	return nil
}

func reportMediaErrors(ctx context.Context, editor *tui.Editor, state *session.State) {
	def, ok := state.Definition()
	if !ok {
		return
	}
	for _, field := range def.MediaFields() {
		if err := state.MediaError(field); err != nil {
			_ = editor.Info(ctx, err.Error())
		}
	}
}
