// Package process holds the CLI command actions and the worker pool that
// fans batch requests out over the orchestrator.
package process

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tessio/llm-pdf-reader/models"
	"github.com/tessio/llm-pdf-reader/pkg/cache"
	"github.com/tessio/llm-pdf-reader/pkg/reader"
	"github.com/urfave/cli/v2"
)

// ReadAction handles the `read` command: text extraction with quality
// scoring and chunking.
func ReadAction(c *cli.Context) error {
	logger := newLogger(c)
	svc, cfg, err := buildService(c, logger)
	if err != nil {
		return err
	}

	opts := requestOptions(c, cfg)
	return runFiles(c, logger, svc, cfg, reader.MethodText, func(ctx context.Context, path string) (*models.DocumentResult, error) {
		return svc.ReadDocument(ctx, reader.Request{FilePath: path, Options: opts, Force: c.Bool("force")})
	})
}

// OCRAction handles the `ocr` command: page rendering plus recognition.
func OCRAction(c *cli.Context) error {
	logger := newLogger(c)
	svc, cfg, err := buildService(c, logger)
	if err != nil {
		return err
	}

	opts := requestOptions(c, cfg)
	if c.IsSet("languages") {
		opts.Languages = splitList(c.String("languages"))
	}
	if c.IsSet("dpi") {
		opts.DPI = c.Int("dpi")
	}
	opts.UseAccelerator = c.Bool("accelerator")

	return runFiles(c, logger, svc, cfg, svc.EngineName(), func(ctx context.Context, path string) (*models.DocumentResult, error) {
		return svc.OCRDocument(ctx, reader.Request{FilePath: path, Options: opts, Force: c.Bool("force")})
	})
}

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func buildService(c *cli.Context, logger *slog.Logger) (*reader.Service, *models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, nil, err
	}
	return reader.NewService(logger, cache.New(cfg.Cache.MaxEntries, ttl)), cfg, nil
}

func requestOptions(c *cli.Context, cfg *models.Config) models.RequestOptions {
	opts := models.RequestOptions{
		Pages: c.String("pages"),
	}
	if c.IsSet("chunk-size") {
		opts.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("chunk-overlap") {
		opts.ChunkOverlap = c.Int("chunk-overlap")
	}
	opts.ApplyDefaults(cfg)
	return opts
}

// runFiles dispatches the files through the worker pool and prints the JSON
// envelopes to stdout: a single object for one file, an array for many.
// Every failure is shaped into an envelope; a non-zero exit signals that at
// least one file failed.
func runFiles(c *cli.Context, logger *slog.Logger, svc *reader.Service, cfg *models.Config, method string, process func(context.Context, string) (*models.DocumentResult, error)) error {
	files := gatherFiles(c)
	if len(files) == 0 {
		return fmt.Errorf("no input files: pass file paths as arguments or via --files")
	}

	results := runPool(c.Context, logger, svc, files, cfg.Workers, process)

	envelopes := make([]*models.DocumentResult, 0, len(results))
	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			env := models.ErrorResult(method, r.Err.Error())
			env.FilePath = r.Path
			envelopes = append(envelopes, env)
			continue
		}
		envelopes = append(envelopes, r.Payload)
	}

	var out []byte
	var err error
	if len(envelopes) == 1 {
		out, err = json.MarshalIndent(envelopes[0], "", "  ")
	} else {
		out, err = json.MarshalIndent(envelopes, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(c.App.Writer, string(out))

	if failed {
		return cli.Exit("one or more files failed", 1)
	}
	return nil
}

func gatherFiles(c *cli.Context) []string {
	files := c.Args().Slice()
	if c.IsSet("files") {
		files = append(files, splitList(c.String("files"))...)
	}
	return files
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
