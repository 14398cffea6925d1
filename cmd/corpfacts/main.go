// Copyright 2025 Poiesic Systems
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
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/poiesic/corpfacts"
	"github.com/poiesic/corpfacts/ai"
	"github.com/poiesic/corpfacts/core"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	app := &cli.App{
		Name:  "corpfacts",
		Usage: "Extract and manage company facts from free text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file (rotated) instead of stderr",
			},
			&cli.StringFlag{
				Name:    "env-file",
				Aliases: []string{"e"},
				Usage:   "Path to env file with configuration",
				Value:   ".env",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "repl",
				Usage:  "Interactive session: type requests, quit/exit/q to leave",
				Action: replCommand,
			},
			{
				Name:      "process",
				Usage:     "Extract and store company facts from a text file",
				ArgsUsage: "<file>",
				Action:    processCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "stream",
						Usage: "Report results per chunk as they are extracted",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search stored companies by name or founder",
				ArgsUsage: "<term>",
				Action:    searchCommand,
			},
			{
				Name:   "list",
				Usage:  "List stored companies",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of companies to list",
						Value:   10,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show database statistics",
				Action: statsCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete a stored company by id",
				ArgsUsage: "<id>",
				Action:    deleteCommand,
			},
			{
				Name:   "init-env",
				Usage:  "Write a sample .env.example file",
				Action: initEnvCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newSystem(c *cli.Context) (*corpfacts.System, error) {
	cfg, err := corpfacts.LoadConfig(c.String("env-file"))
	if err != nil {
		return nil, err
	}

	system, err := corpfacts.NewSystem(c.Context, cfg)
	if err != nil {
		if errors.Is(err, corpfacts.ErrAPIKeyRequired) {
			return nil, fmt.Errorf("%w (run 'corpfacts init-env' to create a template)", err)
		}
		return nil, err
	}
	return system, nil
}

func replCommand(c *cli.Context) error {
	system, err := newSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	fmt.Println("corpfacts interactive session. Type 'quit' to exit.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			switch strings.ToLower(line) {
			case "quit", "exit", "q":
				return nil
			}

			fmt.Println("Agent:", system.Run(ctx, line))
		}
	}
}

func processCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("file argument is required")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	text, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	system, err := newSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	if !c.Bool("stream") {
		fmt.Println(system.ProcessText(ctx, string(text)))
		return nil
	}

	var stored int
	for result := range system.Stream(ctx, string(text)) {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "chunk failed: %v\n", result.Err)
			continue
		}
		if result.Count == 0 {
			continue
		}

		for _, record := range result.Records {
			fmt.Printf("extracted: %s\n", record.Name)
		}

		batch := &core.Batch{}
		batch.Add(result.Records...)
		outcome, err := system.Repository().UpsertBatch(ctx, batch)
		if err != nil {
			return err
		}
		stored += outcome.Succeeded
	}

	fmt.Printf("Stored %d companies.\n", stored)
	return ctx.Err()
}

func searchCommand(c *cli.Context) error {
	term := c.Args().First()
	if term == "" {
		return fmt.Errorf("search term is required")
	}

	system, err := newSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	fmt.Println(system.Agent().Execute(c.Context, ai.Command{Op: ai.OpSearch, Term: term}))
	return nil
}

func listCommand(c *cli.Context) error {
	system, err := newSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	fmt.Println(system.Agent().Execute(c.Context, ai.Command{Op: ai.OpList, Limit: c.Int("limit")}))
	return nil
}

func statsCommand(c *cli.Context) error {
	system, err := newSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	fmt.Println(system.Agent().Execute(c.Context, ai.Command{Op: ai.OpStats}))
	return nil
}

func deleteCommand(c *cli.Context) error {
	arg := c.Args().First()
	if arg == "" {
		return fmt.Errorf("company id is required")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid company id %q", arg)
	}

	system, err := newSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	deleted, err := system.Repository().Delete(c.Context, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("No company with id %d.\n", id)
		return nil
	}
	fmt.Printf("Deleted company %d.\n", id)
	return nil
}

func initEnvCommand(c *cli.Context) error {
	path := ".env.example"
	if err := corpfacts.WriteSampleEnv(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
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

	var out io.Writer = os.Stderr
	if logFile := c.String("log-file"); logFile != "" {
		out = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
