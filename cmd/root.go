package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/audi70r/gitrewind/internal/config"
	"github.com/audi70r/gitrewind/internal/git"
	"github.com/audi70r/gitrewind/internal/history"
	"github.com/audi70r/gitrewind/internal/navigation"
	"github.com/audi70r/gitrewind/internal/ui"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "gitrewind",
		Usage:     "Page through git history and reset the working tree to a past commit",
		UsageText: "gitrewind [options] [repository]",
		Version:   "1.0.0",
		Flags:     flags(),
		Action:    browseAction,
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository (default: current directory)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Write logs to this file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log every git invocation",
		},
	}
}

// loadConfig loads configuration from file or defaults and applies flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	switch {
	case c.IsSet("repo"):
		cfg.RepoPath = c.String("repo")
	case c.NArg() > 0:
		cfg.RepoPath = c.Args().First()
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger returns a logger writing to cfg.LogFile, or discarding
// everything when no file is configured. The terminal belongs to the UI.
func newLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open log file %s", cfg.LogFile)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.Level()}))
	return logger, f.Close, nil
}

// openHistory creates the history model for cfg.RepoPath.
func openHistory(cfg *config.Config, runner git.Runner, logger *slog.Logger) (*history.Model, error) {
	workDir, err := filepath.Abs(cfg.RepoPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", cfg.RepoPath)
	}

	model, err := history.New(runner, workDir, history.Options{
		PageSize:     1, // replaced by the first resize
		CountCommand: cfg.CountCommand,
		Logger:       logger,
	})
	if err != nil {
		if !git.IsLaunchFailure(err) && !git.IsGitRepo(runner, workDir) {
			return nil, errors.Newf("%s is not a git repository", workDir)
		}
		return nil, err
	}
	return model, nil
}

func browseAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %v", err), 1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return cli.Exit(color.RedString("Error: %v", err), 1)
	}
	defer closeLog()

	runner := git.NewExecRunner(cfg.GitBin, logger)
	model, err := openHistory(cfg, runner, logger)
	if err != nil {
		logger.Error("cannot open history", "repo", cfg.RepoPath, "err", err)
		return cli.Exit(color.RedString("Error: cannot browse history of %s: %v", cfg.RepoPath, err), 1)
	}

	nav := navigation.New(model, cfg.ChromeRows)
	if err := ui.NewApp(model, nav, cfg, logger).Run(); err != nil {
		logger.Error("exited with error", "err", err)
		return cli.Exit(color.RedString("Error: %v", err), 1)
	}

	if model.HasStash() {
		color.Yellow("Changes stashed before the reset are still in the stash list (git stash apply).")
	}
	return nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
