package database

import (
	"time"

	"github.com/google/uuid"
)

// CrawlRun is one archived crawl: when it ran, against which organization,
// and how many hierarchy records it produced.
type CrawlRun struct {
	RunID       uuid.UUID
	OrgID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	RecordCount int
}
