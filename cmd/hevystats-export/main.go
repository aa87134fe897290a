package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/hevystats/internal/config"
	"github.com/meltforce/hevystats/internal/export"
	"github.com/meltforce/hevystats/internal/importer"
	"github.com/meltforce/hevystats/internal/pipeline"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults only when empty)")
	format := flag.String("format", "", "export format: parquet, csv or sqlite (overrides export.format)")
	out := flag.String("out", "", "output path (overrides export.path)")
	dryRun := flag.Bool("dry-run", false, "run the pipeline and report without writing output")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("hevystats-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *format != "" {
		cfg.Export.Format = *format
	}
	if *out != "" {
		cfg.Export.Path = *out
	}

	ctx := context.Background()

	imp, closeSource, err := importer.FromConfig(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open set source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	in, stats, err := imp.Load(ctx)
	if err != nil {
		log.Error("load failed", "error", err)
		os.Exit(1)
	}

	ds := pipeline.Enrich(*in, pipeline.Options{DefaultBodyweightKg: cfg.Pipeline.DefaultBodyweightKg})

	if *dryRun {
		log.Info("DRY RUN mode: no output written")
	} else {
		if err := export.Write(cfg.Export.Path, cfg.Export.Format, ds); err != nil {
			log.Error("export failed", "error", err)
			os.Exit(1)
		}
		log.Info("export written", "path", cfg.Export.Path, "format", cfg.Export.Format)
	}

	printQuality(stats, ds.Quality())
}

func printQuality(stats *importer.Stats, q pipeline.Quality) {
	fmt.Println()
	fmt.Println("=== Export Summary ===")
	fmt.Printf("  Run ID:             %s\n", q.RunID)
	fmt.Printf("  Sets loaded:        %d\n", stats.SetsLoaded)
	fmt.Printf("  Sets enriched:      %d\n", q.EnrichedSets)
	fmt.Printf("  Sets dropped:       %d (warm-ups and excluded exercises)\n", q.DroppedSets)
	fmt.Printf("  Catalog exercises:  %d\n", stats.CatalogExercises)
	fmt.Printf("  Bodyweight samples: %d (%d skipped)\n", stats.BodyweightSamples, stats.BodyweightSkipped)
	fmt.Printf("  Gym periods:        %d\n", stats.GymPeriods)
	fmt.Printf("  Routine periods:    %d\n", stats.RoutinePeriods)

	if len(stats.MissingSources) > 0 {
		fmt.Printf("\n  Missing optional sources:\n")
		for _, s := range stats.MissingSources {
			fmt.Printf("    - %s\n", s)
		}
	}
	if len(q.UnknownExercises) > 0 {
		fmt.Printf("\n  Exercises missing from the catalog:\n")
		for _, u := range q.UnknownExercises {
			if u.Suggestion != "" {
				fmt.Printf("    - %s (%d sets, did you mean %q?)\n", u.Title, u.Sets, u.Suggestion)
			} else {
				fmt.Printf("    - %s (%d sets)\n", u.Title, u.Sets)
			}
		}
	}
	if len(q.Warnings) > 0 {
		fmt.Printf("\n  Warnings:\n")
		for _, w := range q.Warnings {
			fmt.Printf("    - %s\n", w)
		}
	}
	fmt.Println()
}
