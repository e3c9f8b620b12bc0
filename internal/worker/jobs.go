package worker

import (
	"context"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/services"
)

// SyncJob runs one sync in the background.
type SyncJob struct {
	Service services.SyncService
}

func (j *SyncJob) Name() string { return "sync" }

func (j *SyncJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	result, err := j.Service.Sync(ctx)
	if errors.CodeOf(err) == errors.ErrCodeSyncInProgress {
		log.Info("another sync is running, skipping scheduled run")
		return nil
	}
	if err != nil {
		return err
	}

	for _, msg := range result.Errors {
		log.Warn("%s", msg)
	}
	return nil
}
