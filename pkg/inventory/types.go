package inventory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	yadisk "github.com/natserract/yadisk/pkg/yandex/disk"
)

// Sync job statuses.
const (
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// ErrParentMissing is returned by a Store when a resource is saved before
// the folder that contains it.
var ErrParentMissing = errors.New("inventory: parent folder is not stored")

// ResourceClient is the part of the disk client the sync walks with.
type ResourceClient interface {
	GetMetaInformation(ctx context.Context, path string, opts *yadisk.MetaOptions) (*yadisk.Resource, error)
}

// Store persists resource snapshots and sync job bookkeeping.
type Store interface {
	CreateSyncJob(ctx context.Context, job *SyncJob) error
	// SaveResource upserts res by path. An empty parent marks the root of a sync.
	SaveResource(ctx context.Context, jobID uuid.UUID, parent string, res *yadisk.Resource) error
	CompleteSyncJob(ctx context.Context, job *SyncJob) error
}

// SyncJob is one inventory run.
type SyncJob struct {
	ID             uuid.UUID
	Root           string
	Status         string
	DirsSucceeded  int
	DirsFailed     int
	FilesSucceeded int
	FilesFailed    int
	Error          string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Duration is the wall time of a finished job.
func (j *SyncJob) Duration() time.Duration {
	if j.FinishedAt.IsZero() {
		return 0
	}
	return j.FinishedAt.Sub(j.StartedAt)
}

// SyncMetrics tracks the overall sync operation metrics
type SyncMetrics struct {
	JobID          uuid.UUID
	DirsSucceeded  int
	DirsFailed     int
	FilesSucceeded int
	FilesFailed    int
	mu             sync.Mutex
}

func (m *SyncMetrics) AddDirSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DirsSucceeded++
}

func (m *SyncMetrics) AddDirFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DirsFailed++
}

func (m *SyncMetrics) AddFileSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FilesSucceeded++
}

func (m *SyncMetrics) AddFileFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FilesFailed++
}

// TotalSucceeded returns the total number of succeeded operations
func (m *SyncMetrics) TotalSucceeded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DirsSucceeded + m.FilesSucceeded
}

// TotalFailed returns the total number of failed operations
func (m *SyncMetrics) TotalFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DirsFailed + m.FilesFailed
}

// fill copies the counters into job.
func (m *SyncMetrics) fill(job *SyncJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job.DirsSucceeded = m.DirsSucceeded
	job.DirsFailed = m.DirsFailed
	job.FilesSucceeded = m.FilesSucceeded
	job.FilesFailed = m.FilesFailed
}
