package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://api.atlassian.com/admin/v2"

type OrgSpyConfiguration struct {
	OrgID          string
	APIToken       string
	BaseURL        string
	PageDelay      float64 // seconds between page fetches, clamped to [0, 5]
	Debug          bool
	SnapshotPath   string
	SnapshotFormat string // "json" (array, full rewrite) or "jsonl" (append log)
	PostgresDSN    string // empty disables the crawl archive
	ListenAddr     string
}

func LoadEnvConfig(configName string) OrgSpyConfiguration {
	err := godotenv.Load(configName)
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	orgID := os.Getenv("ORGSPY_ORG_ID")
	apiToken := os.Getenv("ORGSPY_API_TOKEN")
	if orgID == "" || apiToken == "" {
		log.Fatal("ORGSPY_ORG_ID and ORGSPY_API_TOKEN must be set")
	}

	baseURL := os.Getenv("ORGSPY_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	pageDelay := 1.0
	if v := os.Getenv("ORGSPY_PAGE_DELAY"); v != "" {
		pageDelay, err = strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("failed to parse ORGSPY_PAGE_DELAY: %v", err)
		}
	}
	if pageDelay < 0 {
		pageDelay = 0
	}
	if pageDelay > 5 {
		pageDelay = 5
	}

	debug := false
	if v := os.Getenv("ORGSPY_DEBUG"); v != "" {
		debug, err = strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("failed to parse ORGSPY_DEBUG: %v", err)
		}
	}

	snapshotPath := os.Getenv("ORGSPY_SNAPSHOT_PATH")
	if snapshotPath == "" {
		snapshotPath = "hierarchy_data.json"
	}

	snapshotFormat := os.Getenv("ORGSPY_SNAPSHOT_FORMAT")
	if snapshotFormat == "" {
		snapshotFormat = "json"
	}
	if snapshotFormat != "json" && snapshotFormat != "jsonl" {
		log.Fatalf("unknown ORGSPY_SNAPSHOT_FORMAT %q (want json or jsonl)", snapshotFormat)
	}

	listenAddr := os.Getenv("ORGSPY_LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	return OrgSpyConfiguration{
		OrgID:          orgID,
		APIToken:       apiToken,
		BaseURL:        baseURL,
		PageDelay:      pageDelay,
		Debug:          debug,
		SnapshotPath:   snapshotPath,
		SnapshotFormat: snapshotFormat,
		PostgresDSN:    os.Getenv("ORGSPY_POSTGRES_DSN"),
		ListenAddr:     listenAddr,
	}
}
