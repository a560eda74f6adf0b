package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"f0oster/orgspy/snapshot"
)

// Database archives completed crawl runs to Postgres. It is an optional sink:
// the file snapshot stays the resume mechanism, the archive keeps history
// across runs for after-the-fact comparison.
type Database struct {
	dsn            string
	ConnectionPool *pgxpool.Pool
	ctx            context.Context
}

func NewDatabase(dsn string, ctx context.Context) *Database {
	return &Database{
		dsn: dsn,
		ctx: ctx,
	}
}

// Connect adds a connection to the pgx connection pool.
func (db *Database) Connect() error {
	var err error
	db.ConnectionPool, err = pgxpool.New(db.ctx, db.dsn)
	if err != nil {
		return fmt.Errorf("unable to connect: %w", err)
	}
	return nil
}

func (db *Database) Close() {
	if db.ConnectionPool != nil {
		db.ConnectionPool.Close()
	}
}

// InitializeSchema creates the archive tables when they do not exist yet.
func (db *Database) InitializeSchema() error {
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS CrawlRuns (
		run_id UUID PRIMARY KEY,
		org_id VARCHAR(255) NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		record_count INT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS HierarchyRecords (
		run_id UUID NOT NULL REFERENCES CrawlRuns(run_id),
		seq INT NOT NULL,
		directory_id VARCHAR(255) NOT NULL,
		directory_name VARCHAR(255),
		group_id VARCHAR(255) NOT NULL,
		group_name VARCHAR(255),
		user_id VARCHAR(255) NOT NULL,
		user_name VARCHAR(255),
		user_email VARCHAR(255),
		notes TEXT,
		platform_roles TEXT,
		PRIMARY KEY (run_id, seq)
	);
	`
	if _, err := db.ConnectionPool.Exec(db.ctx, createTablesSQL); err != nil {
		return fmt.Errorf("create archive tables: %w", err)
	}
	return nil
}

func rollbackOrCommit(tx pgx.Tx, err *error) {
	if *err != nil {
		if rbErr := tx.Rollback(context.Background()); rbErr != nil {
			slog.Error("transaction rollback failed", "err", rbErr, "cause", *err)
		}
	} else {
		if cmErr := tx.Commit(context.Background()); cmErr != nil {
			*err = fmt.Errorf("commit failed: %w", cmErr)
		}
	}
}

// ArchiveRun stores one completed crawl and its records in a single
// fail-fast transaction: the run and every record land together or not at
// all. Record order is preserved via the seq column.
func (db *Database) ArchiveRun(orgID string, startedAt, finishedAt time.Time, records []snapshot.HierarchyRecord) (uuid.UUID, error) {
	runID := uuid.New()

	tx, err := db.ConnectionPool.Begin(db.ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer rollbackOrCommit(tx, &err)

	_, err = tx.Exec(db.ctx, `
		INSERT INTO CrawlRuns (run_id, org_id, started_at, finished_at, record_count)
		VALUES ($1, $2, $3, $4, $5)
	`, runID, orgID, startedAt, finishedAt, len(records))
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert crawl run: %w", err)
	}

	const insertRecordQuery = `
		INSERT INTO HierarchyRecords (
			run_id, seq,
			directory_id, directory_name,
			group_id, group_name,
			user_id, user_name, user_email,
			notes, platform_roles
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for i, record := range records {
		_, err = tx.Exec(db.ctx, insertRecordQuery,
			runID, i,
			record.DirectoryID, record.DirectoryName,
			record.GroupID, record.GroupName,
			record.UserID, record.UserName, record.UserEmail,
			record.Notes, record.PlatformRoles,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	slog.Info("archived crawl run", "run_id", runID, "records", len(records))
	return runID, nil
}

// ListRuns returns the archived runs for an organization, newest first.
func (db *Database) ListRuns(orgID string) ([]CrawlRun, error) {
	rows, err := db.ConnectionPool.Query(db.ctx, `
		SELECT run_id, org_id, started_at, finished_at, record_count
		FROM CrawlRuns
		WHERE org_id = $1
		ORDER BY started_at DESC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list crawl runs: %w", err)
	}
	defer rows.Close()

	var runs []CrawlRun
	for rows.Next() {
		var run CrawlRun
		if err := rows.Scan(&run.RunID, &run.OrgID, &run.StartedAt, &run.FinishedAt, &run.RecordCount); err != nil {
			return nil, fmt.Errorf("scan crawl run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunRecords loads the ordered record sequence of one archived run.
func (db *Database) RunRecords(runID uuid.UUID) ([]snapshot.HierarchyRecord, error) {
	rows, err := db.ConnectionPool.Query(db.ctx, `
		SELECT directory_id, directory_name, group_id, group_name,
		       user_id, user_name, user_email, notes, platform_roles
		FROM HierarchyRecords
		WHERE run_id = $1
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("load run records: %w", err)
	}
	defer rows.Close()

	var records []snapshot.HierarchyRecord
	for rows.Next() {
		var r snapshot.HierarchyRecord
		if err := rows.Scan(&r.DirectoryID, &r.DirectoryName, &r.GroupID, &r.GroupName,
			&r.UserID, &r.UserName, &r.UserEmail, &r.Notes, &r.PlatformRoles); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
