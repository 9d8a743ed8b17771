package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ballclash/ballclash-sim/internal/battlesim"
	"github.com/ballclash/ballclash-sim/internal/config"
	"github.com/ballclash/ballclash-sim/internal/scenario"
	"github.com/ballclash/ballclash-sim/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	settings, label, err := loadSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}

	sweepCfg := battlesim.DefaultSweepConfig()
	sweepCfg.Settings = settings
	sweepCfg.Label = label
	if cfg.Seeds > 0 {
		sweepCfg.Seeds = cfg.Seeds
	}

	var result *battlesim.SweepResult
	kind := cfg.SweepKind
	switch kind {
	case store.KindRandom:
		randomCfg := battlesim.DefaultRandomSweepConfig()
		randomCfg.SweepConfig = sweepCfg
		slog.Info("running random profile sweep",
			"settings", label, "scenarios", randomCfg.ScenarioCount, "seeds", sweepCfg.Seeds)
		result, err = battlesim.RunRandomProfileSweep(randomCfg)
	case store.KindGrid:
		slog.Info("running profile grid sweep", "settings", label, "seeds", sweepCfg.Seeds)
		result, err = battlesim.RunProfileSweep(sweepCfg)
	default:
		return fmt.Errorf("unknown sweep kind %q (want %q or %q)", kind, store.KindGrid, store.KindRandom)
	}
	if err != nil {
		return err
	}

	if len(result.TopScenarios) > 0 {
		best := result.TopScenarios[0]
		slog.Info("sweep finished",
			"scenarios", result.ScenarioCount,
			"best", best.ScenarioName,
			"score", best.Score)
	}

	if err := writeReports(cfg.ReportDir, kind, result); err != nil {
		return err
	}

	if cfg.DatabaseURL != "" {
		if err := persistReport(cfg.DatabaseURL, kind, result); err != nil {
			return err
		}
	}
	return nil
}

// loadSettings reads the scenario document, falling back to a stock duel
// when no file exists so the tool runs out of the box.
func loadSettings(path string) (scenario.Settings, string, error) {
	settings, err := scenario.LoadSettings(path)
	if err == nil {
		return settings, path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return scenario.Settings{}, "", err
	}

	slog.Warn("settings file not found, using built-in duel", "path", path)
	return scenario.Settings{
		BallSpecs: []scenario.BodySpec{
			{Team: "left"},
			{Team: "right"},
		},
	}, "builtin:duel", nil
}

func writeReports(dir, kind string, result *battlesim.SweepResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	base := filepath.Join(dir, fmt.Sprintf("sweep-%s-%s", kind, stamp))

	if err := os.WriteFile(base+".md", []byte(battlesim.Markdown(result)), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(base+".html", []byte(battlesim.HTML(result)), 0o644); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".json", payload, 0o644); err != nil {
		return err
	}

	slog.Info("reports written", "markdown", base+".md", "html", base+".html", "json", base+".json")
	return nil
}

func persistReport(databaseURL, kind string, result *battlesim.SweepResult) error {
	ctx := context.Background()
	s, err := store.NewPostgresStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := store.NewReport(kind, result)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, report); err != nil {
		return err
	}
	slog.Info("report persisted", "id", report.ID, "kind", report.Kind, "top_score", report.TopScore)
	return nil
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
