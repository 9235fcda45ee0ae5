// Copyright 2026 Seorim Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/seorim/newsgate"
	"github.com/seorim/newsgate/config"
	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/reindex"
)

func main() {
	app := &cli.App{
		Name:  "newsgate",
		Usage: "News document ingestion pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				EnvVars: []string{config.EnvConfigPath},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "worker",
				Usage:  "Drain the task queue until interrupted",
				Action: workerCommand,
			},
			{
				Name:      "submit",
				Usage:     "Enqueue raw candidates from a JSON file",
				Action:    submitCommand,
				ArgsUsage: "<candidates.json>",
			},
			{
				Name:      "search",
				Usage:     "Search stored documents",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-hits",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print store and queue counts",
				Action: statsCommand,
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed all stored documents and refresh the vector index",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Documents per embedding batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Progress report interval in documents",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum embedding attempts per batch",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for embedding retries",
						Value: time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func workerCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sys, err := newsgate.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open system: %w", err)
	}
	defer sys.Close()

	dispatcher, err := sys.NewDispatcher()
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}
	defer dispatcher.Release()

	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// candidate is the collector-boundary JSON shape accepted by submit.
type candidate struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Summary     string `json:"summary"`
}

func readCandidates(path string) ([]*core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates %s: %w", path, err)
	}

	var candidates []candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("parse candidates %s: %w", path, err)
	}

	docs := make([]*core.Document, 0, len(candidates))
	for _, cand := range candidates {
		doc := &core.Document{
			Title:       cand.Title,
			URL:         cand.URL,
			Source:      cand.Source,
			PublishedAt: cand.PublishedAt,
			Summary:     cand.Summary,
		}
		doc.EnsureID()
		docs = append(docs, doc)
	}
	return docs, nil
}

func submitCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("submit requires exactly one candidates file argument")
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	docs, err := readCandidates(c.Args().First())
	if err != nil {
		return err
	}

	ctx := context.Background()
	sys, err := newsgate.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open system: %w", err)
	}
	defer sys.Close()

	dispatcher, err := sys.NewDispatcher()
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}
	defer dispatcher.Release()

	submitted := 0
	for _, doc := range docs {
		if err := dispatcher.Submit(ctx, doc); err != nil {
			slog.Warn("skipping candidate", "url", doc.URL, "err", err)
			continue
		}
		submitted++
	}

	fmt.Fprintf(os.Stderr, "Submitted %d of %d candidates\n", submitted, len(docs))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("search requires exactly one query argument")
	}
	query := c.Args().First()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	ctx := context.Background()
	sys, err := newsgate.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open system: %w", err)
	}
	defer sys.Close()

	searcher, err := sys.NewSearcher()
	if err != nil {
		return fmt.Errorf("create searcher: %w", err)
	}

	results, err := searcher.FindSimilar(ctx, query, c.Int("max-hits"))
	if err != nil {
		return err
	}

	for i, result := range results {
		fmt.Printf("%2d. [%.3f] %s\n    %s\n", i+1, result.Score, result.Document.Title, result.Document.URL)
	}
	if len(results) == 0 {
		fmt.Println("No results.")
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	ctx := context.Background()
	sys, err := newsgate.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open system: %w", err)
	}
	defer sys.Close()

	stats, err := sys.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Documents:   %d\n", stats.Documents)
	fmt.Printf("Blacklisted: %d\n", stats.Blacklisted)
	fmt.Printf("Pending:     %d\n", stats.Pending)
	return nil
}

func reindexCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sys, err := newsgate.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open system: %w", err)
	}
	defer sys.Close()

	rcfg := reindex.DefaultConfig()
	rcfg.BatchSize = c.Int("batch-size")
	rcfg.ReportInterval = c.Int("report-interval")
	rcfg.MaxRetries = c.Int("max-retries")
	rcfg.RetryDelay = c.Duration("retry-delay")
	rcfg.SummaryMax = cfg.Pipeline.VectorSummaryMax
	rcfg.ContentMax = cfg.Pipeline.VectorContentMax

	reindexer, err := sys.NewReindexer(rcfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("create reindexer: %w", err)
	}

	return reindexer.Run(ctx)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
