// Package inventory snapshots the resource tree of a disk into a Store.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	yadisk "github.com/natserract/yadisk/pkg/yandex/disk"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	DefaultRoot        = "disk:/"
	DefaultPageSize    = 100
	DefaultConcurrency = 5
)

// SyncService walks a folder tree and records every resource in a Store,
// tracking each run as a sync job.
type SyncService struct {
	client      ResourceClient
	store       Store
	pageSize    int
	concurrency int
	logger      *zap.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(client ResourceClient, store Store, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		client:      client,
		store:       store,
		pageSize:    DefaultPageSize,
		concurrency: DefaultConcurrency,
		logger:      logger,
	}
}

// SyncAll records root and everything below it. Failures below root are
// counted in the metrics and logged; only a failure to read or store root
// itself is returned. The sync job is completed even when ctx is cancelled.
func (s *SyncService) SyncAll(ctx context.Context, root string) (*SyncMetrics, error) {
	if root == "" {
		root = DefaultRoot
	}

	job := &SyncJob{
		ID:        uuid.New(),
		Root:      root,
		Status:    JobRunning,
		StartedAt: time.Now(),
	}
	metrics := &SyncMetrics{JobID: job.ID}

	if err := s.store.CreateSyncJob(ctx, job); err != nil {
		return metrics, fmt.Errorf("failed to create sync job: %w", err)
	}
	s.logger.Info("Starting inventory sync",
		zap.String("job_id", job.ID.String()),
		zap.String("root", root))

	syncErr := s.syncDir(ctx, job.ID, "", root, metrics)

	job.FinishedAt = time.Now()
	metrics.fill(job)
	job.Status = JobCompleted
	if syncErr != nil {
		job.Status = JobFailed
		job.Error = syncErr.Error()
	}
	if err := s.store.CompleteSyncJob(context.WithoutCancel(ctx), job); err != nil {
		s.logger.Warn("Failed to complete sync job",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("Completed inventory sync",
		zap.String("job_id", job.ID.String()),
		zap.String("status", job.Status),
		zap.Duration("duration", job.Duration()),
		zap.Int("dirs_succeeded", job.DirsSucceeded),
		zap.Int("dirs_failed", job.DirsFailed),
		zap.Int("files_succeeded", job.FilesSucceeded),
		zap.Int("files_failed", job.FilesFailed))

	if syncErr != nil {
		return metrics, fmt.Errorf("failed to sync %s: %w", root, syncErr)
	}
	return metrics, nil
}

// syncDir stores the resource at path and, for a folder, its contents.
// Subfolders are walked concurrently, at most s.concurrency at a time per folder.
func (s *SyncService) syncDir(ctx context.Context, jobID uuid.UUID, parent, path string, metrics *SyncMetrics) error {
	dir, items, err := s.list(ctx, path)
	if err != nil {
		metrics.AddDirFailure()
		s.logger.Error("Failed to list folder", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to list %s: %w", path, err)
	}
	if dir.Path == "" {
		dir.Path = path
	}

	if err := s.store.SaveResource(ctx, jobID, parent, dir); err != nil {
		if dir.IsDir() {
			metrics.AddDirFailure()
		} else {
			metrics.AddFileFailure()
		}
		s.logger.Error("Failed to save resource", zap.String("path", dir.Path), zap.Error(err))
		return fmt.Errorf("failed to save %s: %w", dir.Path, err)
	}
	if !dir.IsDir() {
		metrics.AddFileSuccess()
		return nil
	}
	metrics.AddDirSuccess()

	var subdirs []string
	for i := range items {
		item := &items[i]
		if item.IsDir() {
			subdirs = append(subdirs, item.Path)
			continue
		}
		if err := s.store.SaveResource(ctx, jobID, dir.Path, item); err != nil {
			metrics.AddFileFailure()
			s.logger.Warn("Failed to save file",
				zap.String("path", item.Path),
				zap.Error(err))
			continue
		}
		metrics.AddFileSuccess()
	}

	s.logger.Debug("Synced folder",
		zap.String("path", dir.Path),
		zap.Int("items_count", len(items)),
		zap.Int("subfolder_count", len(subdirs)))

	if len(subdirs) == 0 {
		return nil
	}

	subfolderPool := pool.New().WithMaxGoroutines(s.concurrency).WithErrors()
	for _, sub := range subdirs {
		subfolderPool.Go(func() error {
			return s.syncDir(ctx, jobID, dir.Path, sub, metrics)
		})
	}
	if err := subfolderPool.Wait(); err != nil {
		s.logger.Warn("Error processing subfolders",
			zap.String("path", dir.Path),
			zap.Error(err))
	}

	return nil
}

// list fetches the resource at path and, for a folder, all of its items
// page by page.
func (s *SyncService) list(ctx context.Context, path string) (*yadisk.Resource, []yadisk.Resource, error) {
	var (
		dir    *yadisk.Resource
		items  []yadisk.Resource
		offset int
	)
	for {
		page, err := s.client.GetMetaInformation(ctx, path, &yadisk.MetaOptions{
			Limit:  s.pageSize,
			Offset: offset,
			Sort:   "name",
		})
		if err != nil {
			return nil, nil, err
		}
		if dir == nil {
			dir = page
		}
		if page.Embedded == nil {
			break
		}

		n := len(page.Embedded.Items)
		items = append(items, page.Embedded.Items...)
		offset += n
		if n == 0 || n < s.pageSize || offset >= page.Embedded.Total {
			break
		}
	}

	dir.Embedded = nil
	return dir, items, nil
}
