// Copyright 2025 Parthenon Labs
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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/parthenonlabs/repoassist"
	"github.com/parthenonlabs/repoassist/ai"
	"github.com/parthenonlabs/repoassist/core"
	"github.com/parthenonlabs/repoassist/ingest"
	"github.com/parthenonlabs/repoassist/query"
)

func main() {
	app := &cli.App{
		Name:   "repoassist",
		Usage:  "Question-answering assistant over a source-code repository",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Load, chunk, embed, and store a GitHub repository",
				Action: ingestCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "table",
						Aliases:  []string{"t"},
						Usage:    "Target table name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "repo",
						Aliases:  []string{"r"},
						Usage:    "GitHub repository as owner/name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "branch",
						Aliases:  []string{"b"},
						Usage:    "Branch to ingest",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-files",
						Usage: "Maximum files accepted per category (0 = unlimited)",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Maximum concurrent embed-and-store tasks",
						Value: ingest.DefaultConcurrency,
					},
					&cli.BoolFlag{
						Name:  "summaries",
						Usage: "Generate a summary document per source file",
					},
					&cli.BoolFlag{
						Name:  "continue-on-error",
						Usage: "Record failed files and keep going instead of aborting",
					},
				}, commonFlags()...),
			},
			{
				Name:   "chat",
				Usage:  "Interactive question answering over an ingested table",
				Action: chatCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "table",
						Aliases:  []string{"t"},
						Usage:    "Table to answer from",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "profile",
						Aliases: []string{"p"},
						Usage:   "Retrieval profile (focused, broad)",
						Value:   query.ProfileFocused.Name,
					},
				}, commonFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags are shared by the ingest and chat commands.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the store directory",
			Value:   "./repoassist_db",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible API host URL",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Model used for final answers",
		},
		&cli.StringFlag{
			Name:  "planner-model",
			Usage: "Model used for query planning and summaries",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Model used for text embeddings",
		},
		&cli.IntFlag{
			Name:  "vector-size",
			Usage: "Embedding dimensionality (must match the embedding model)",
		},
	}
}

// aiConfig builds the AI configuration from flags, falling back to defaults
// for anything unset.
func aiConfig(c *cli.Context) (*ai.Config, error) {
	var opts []ai.ConfigOption
	if host := c.String("ai-host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if model := c.String("chat-model"); model != "" {
		opts = append(opts, ai.WithChatModel(model))
	}
	if model := c.String("planner-model"); model != "" {
		opts = append(opts, ai.WithPlannerModel(model))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if size := c.Int("vector-size"); size > 0 {
		opts = append(opts, ai.WithVectorSize(size))
	}

	cfg := ai.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := aiConfig(c)
	if err != nil {
		return err
	}

	app, err := repoassist.Open(c.String("db"), repoassist.WithAIConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer app.Close()

	sources, err := repoassist.RepoSources(c.String("repo"), c.String("branch"), c.Int("max-files"))
	if err != nil {
		return err
	}

	opts := []ingest.Option{ingest.WithConcurrency(c.Int("concurrency"))}
	if c.Bool("summaries") {
		opts = append(opts, ingest.WithSummarizer(app.Provider().Summarizer()))
	}
	if c.Bool("continue-on-error") {
		opts = append(opts, ingest.WithFailurePolicy(ingest.PolicyCollect))
	}

	pipeline, err := app.NewIngestionPipeline(opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Repository: %s@%s\n", c.String("repo"), c.String("branch"))
	fmt.Fprintf(os.Stderr, "Table: %s\n", c.String("table"))

	report, err := pipeline.Run(ctx, c.String("table"), sources...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d documents as %d chunks\n", report.Documents, report.Chunks)
	if report.Summaries > 0 {
		fmt.Fprintf(os.Stderr, "Generated %d summaries\n", report.Summaries)
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "Failed: %s: %v\n", failure.Path, failure.Err)
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := aiConfig(c)
	if err != nil {
		return err
	}

	profile, err := query.ProfileByName(c.String("profile"))
	if err != nil {
		return err
	}

	app, err := repoassist.Open(c.String("db"), repoassist.WithAIConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer app.Close()

	assistant, err := app.NewAssistant(c.String("table"), profile)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Answering from table %q with the %s profile. Type exit to quit.\n",
		c.String("table"), profile.Name)

	var history []core.Message
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			fmt.Print("> ")
			continue
		case "exit", "quit":
			return nil
		}

		answer, err := assistant.HandleTurn(ctx, line, history)
		if err != nil {
			// A failed turn does not end the session.
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			fmt.Print("> ")
			continue
		}

		fmt.Println(answer)
		history = append(history,
			core.Message{Role: core.RoleUser, Content: line},
			core.Message{Role: core.RoleAssistant, Content: answer},
		)
		fmt.Print("> ")
	}
	return scanner.Err()
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
