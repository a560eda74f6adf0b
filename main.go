package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"f0oster/orgspy/config"
	"f0oster/orgspy/database"
	"f0oster/orgspy/diff"
	"f0oster/orgspy/hierarchy"
	"f0oster/orgspy/orgapi"
	"f0oster/orgspy/report"
	"f0oster/orgspy/snapshot"
)

func newStore(cfg config.OrgSpyConfiguration) snapshot.Store {
	if cfg.SnapshotFormat == "jsonl" {
		return snapshot.NewLogStore(cfg.SnapshotPath)
	}
	return snapshot.NewFileStore(cfg.SnapshotPath)
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func main() {
	configName := flag.String("config", "settings.env", "Path to the env configuration file")
	reset := flag.Bool("reset", false, "Delete the snapshot checkpoint and start fresh")
	rewalk := flag.Bool("rewalk", false, "Re-emit already-visited triples instead of skipping them (append-only snapshot)")
	flag.Parse()

	ctx := context.Background()

	orgSpyConfig := config.LoadEnvConfig(*configName)
	setupLogging(orgSpyConfig.Debug)

	store := newStore(orgSpyConfig)
	if *reset {
		if err := store.Reset(); err != nil {
			log.Fatalf("failed to reset snapshot: %v", err)
		}
		slog.Info("snapshot checkpoint removed", "path", orgSpyConfig.SnapshotPath)
	}

	// baseline for reporting what this run adds or changes
	previous, err := store.Load()
	if err != nil {
		log.Fatalf("failed to load snapshot: %v", err)
	}

	client := orgapi.NewClient(
		orgSpyConfig.BaseURL,
		orgSpyConfig.OrgID,
		orgSpyConfig.APIToken,
		orgSpyConfig.PageDelay,
		orgSpyConfig.Debug,
	)
	walker := hierarchy.NewWalker(client, store)
	walker.SkipVisited = !*rewalk

	startedAt := time.Now()
	records, roleMappings, err := walker.Crawl(ctx)
	if err != nil {
		log.Fatalf("crawl failed: %v", err)
	}
	finishedAt := time.Now()

	slog.Info("crawl complete",
		"records", len(records),
		"role_mappings", len(roleMappings),
		"elapsed", finishedAt.Sub(startedAt).Round(time.Second))

	if len(previous) > 0 {
		changes := diff.FindChanges(previous, records)
		slog.Info("membership drift since previous snapshot", "changes", len(changes))
		for _, change := range changes {
			slog.Info("membership change",
				"kind", change.Kind,
				"directory", change.Key.DirectoryID,
				"group", change.Key.GroupID,
				"user", change.Key.UserID)
		}
	}

	if err := report.HierarchyTable(records).ExportCSVFile("hierarchy_data.csv"); err != nil {
		log.Fatalf("export hierarchy csv: %v", err)
	}
	if err := report.RoleMappingTable(roleMappings).ExportCSVFile("roles_mapping.csv"); err != nil {
		log.Fatalf("export roles csv: %v", err)
	}
	slog.Info("exported tables", "hierarchy", "hierarchy_data.csv", "roles", "roles_mapping.csv")

	if orgSpyConfig.PostgresDSN != "" {
		db := database.NewDatabase(orgSpyConfig.PostgresDSN, ctx)
		if err := db.Connect(); err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitializeSchema(); err != nil {
			log.Fatalf("failed to initialize archive schema: %v", err)
		}
		if _, err := db.ArchiveRun(orgSpyConfig.OrgID, startedAt, finishedAt, records); err != nil {
			log.Fatalf("failed to archive crawl run: %v", err)
		}

		runs, err := db.ListRuns(orgSpyConfig.OrgID)
		if err != nil {
			log.Fatalf("failed to list archived runs: %v", err)
		}
		slog.Info("archive history", "runs", len(runs))
	}
}
