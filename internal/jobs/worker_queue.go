package jobs

import (
	"github.com/vytor/chessreview/internal/services"
	"github.com/vytor/chessreview/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool        *worker.Pool
	syncService services.SyncService
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, syncService services.SyncService) JobQueue {
	return &WorkerQueue{
		pool:        pool,
		syncService: syncService,
	}
}

func (q *WorkerQueue) EnqueueSync() error {
	return q.pool.Submit(&worker.SyncJob{Service: q.syncService})
}
