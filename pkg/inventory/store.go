package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/natserract/yadisk/pkg/inventory/schema/postgres"
	yadisk "github.com/natserract/yadisk/pkg/yandex/disk"
	"go.uber.org/zap"
)

const (
	insertSyncJobSQL = `
INSERT INTO sync_jobs (id, root, status, started_at)
VALUES ($1, $2, $3, $4)`

	completeSyncJobSQL = `
UPDATE sync_jobs
SET status = $2,
    dirs_succeeded = $3,
    dirs_failed = $4,
    files_succeeded = $5,
    files_failed = $6,
    error = $7,
    finished_at = $8,
    duration_ms = $9
WHERE id = $1`

	upsertResourceSQL = `
INSERT INTO resources (
    path, parent_path, name, type, size, md5, sha256, mime_type, media_type,
    resource_id, public_url, created_at, modified_at, sync_job_id, synced_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
ON CONFLICT (path) DO UPDATE SET
    parent_path = EXCLUDED.parent_path,
    name = EXCLUDED.name,
    type = EXCLUDED.type,
    size = EXCLUDED.size,
    md5 = EXCLUDED.md5,
    sha256 = EXCLUDED.sha256,
    mime_type = EXCLUDED.mime_type,
    media_type = EXCLUDED.media_type,
    resource_id = EXCLUDED.resource_id,
    public_url = EXCLUDED.public_url,
    created_at = EXCLUDED.created_at,
    modified_at = EXCLUDED.modified_at,
    sync_job_id = EXCLUDED.sync_job_id,
    synced_at = now()`
)

// PostgresStore is the Store backed by the inventory tables.
type PostgresStore struct {
	db     *postgres.DB
	logger *zap.Logger
}

// NewPostgresStore creates a store on an open database
func NewPostgresStore(db *postgres.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

func (s *PostgresStore) CreateSyncJob(ctx context.Context, job *SyncJob) error {
	_, err := s.db.Pool().Exec(ctx, insertSyncJobSQL,
		job.ID, job.Root, job.Status,
		pgtype.Timestamptz{Time: job.StartedAt, Valid: true})
	if err != nil {
		return fmt.Errorf("failed to create sync job %s: %w", job.ID, err)
	}
	s.logger.Debug("Created sync job", zap.String("job_id", job.ID.String()))
	return nil
}

func (s *PostgresStore) CompleteSyncJob(ctx context.Context, job *SyncJob) error {
	tag, err := s.db.Pool().Exec(ctx, completeSyncJobSQL,
		job.ID,
		job.Status,
		int32(job.DirsSucceeded),
		int32(job.DirsFailed),
		int32(job.FilesSucceeded),
		int32(job.FilesFailed),
		pgtype.Text{String: job.Error, Valid: job.Error != ""},
		pgtype.Timestamptz{Time: job.FinishedAt, Valid: !job.FinishedAt.IsZero()},
		pgtype.Int8{Int64: job.Duration().Milliseconds(), Valid: !job.FinishedAt.IsZero()},
	)
	if err != nil {
		return fmt.Errorf("failed to complete sync job %s: %w", job.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sync job %s not found", job.ID)
	}
	return nil
}

func (s *PostgresStore) SaveResource(ctx context.Context, jobID uuid.UUID, parent string, res *yadisk.Resource) error {
	_, err := s.db.Pool().Exec(ctx, upsertResourceSQL,
		res.Path,
		optText(parent),
		res.Name,
		res.Type,
		pgtype.Int8{Int64: res.Size, Valid: !res.IsDir()},
		optText(res.MD5),
		optText(res.SHA256),
		optText(res.MimeType),
		optText(res.MediaType),
		optText(res.ResourceID),
		optText(res.PublicURL),
		pgtype.Timestamptz{Time: res.Created, Valid: !res.Created.IsZero()},
		pgtype.Timestamptz{Time: res.Modified, Valid: !res.Modified.IsZero()},
		jobID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", ErrParentMissing, parent)
		}
		s.logger.Error("Failed to save resource",
			zap.String("path", res.Path),
			zap.Error(err))
		return fmt.Errorf("failed to save resource %s: %w", res.Path, err)
	}
	return nil
}

func optText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key constraint violation
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
