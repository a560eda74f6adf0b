package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"f0oster/orgspy/config"
	"f0oster/orgspy/snapshot"
	"f0oster/orgspy/web"
)

func main() {
	configName := flag.String("config", "settings.env", "Path to the env configuration file")
	addr := flag.String("addr", "", "Listen address for web server (overrides ORGSPY_LISTEN_ADDR)")
	flag.Parse()

	orgSpyConfig := config.LoadEnvConfig(*configName)

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen}),
	))

	listenAddr := orgSpyConfig.ListenAddr
	if *addr != "" {
		listenAddr = *addr
	}

	var store snapshot.Store
	if orgSpyConfig.SnapshotFormat == "jsonl" {
		store = snapshot.NewLogStore(orgSpyConfig.SnapshotPath)
	} else {
		store = snapshot.NewFileStore(orgSpyConfig.SnapshotPath)
	}

	webServer := web.NewServer(store, listenAddr)
	log.Printf("Starting web interface at http://localhost%s", listenAddr)
	if err := webServer.Start(); err != nil {
		log.Fatalf("Web server error: %v", err)
	}
}
