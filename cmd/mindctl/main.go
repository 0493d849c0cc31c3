// Copyright 2025 Kadir Pekel
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

// Command mindctl operates the Mind Engine directly, outside of any
// hosting agent runtime: it dreams, approves or rejects learnings, and
// prints the dashboard snapshot for a single agent's Store.
//
// Usage:
//
//	mindctl dream assistant --days 7
//	mindctl approve --agent assistant --id 3
//	mindctl dashboard assistant
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	mindconfig "github.com/kadirpekel/hector-mind/pkg/mind/config"
	"github.com/kadirpekel/hector-mind/pkg/mind/manager"
)

// CLI defines mindctl's command-line interface.
type CLI struct {
	Config   string `short:"c" help:"Path to mind engine config file." type:"path"`
	DataDir  string `help:"Override data directory from config." placeholder:"PATH"`
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"info"`

	Dream     DreamCmd     `cmd:"" help:"Run a dream cycle for an agent."`
	Approve   ApproveCmd   `cmd:"" help:"Approve a pending learning."`
	Reject    RejectCmd    `cmd:"" help:"Reject a learning."`
	Dashboard DashboardCmd `cmd:"" help:"Print a dashboard snapshot for an agent."`
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func loadManager(cli *CLI) (*manager.Manager, error) {
	cfg := mindconfig.Defaults()
	if cli.Config != "" {
		loaded, err := mindconfig.Load(cli.Config)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if cli.DataDir != "" {
		cfg.DataDir = cli.DataDir
	}

	var metrics *manager.Metrics
	if cfg.MetricsEnabled {
		metrics = manager.NewMetrics()
	}

	return manager.New(cfg.DataDir, metrics), nil
}

func main() {
	_ = mindconfig.LoadEnvFiles()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("mindctl"),
		kong.Description("Operate the Mind Engine directly, outside of a hosting agent runtime."),
		kong.UsageOnError(),
	)

	setupLogger(cli.LogLevel)

	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
