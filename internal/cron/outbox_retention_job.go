package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/enums"
	"github.com/C00lPIXER/aperture/pkg/logger"
)

const (
	outboxRetentionDays = 30
	outboxMinAttempts   = 5
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxRetentionRepo interface {
	DeletePublishedBefore(tx *gorm.DB, cutoff time.Time, minAttemptCount int) (int64, error)
}

type dlqCounter interface {
	CountByReason(ctx context.Context) (map[enums.OutboxDLQErrorReason]int64, error)
}

type OutboxRetentionJobParams struct {
	Logger      *logger.Logger
	DB          txRunner
	Repository  outboxRetentionRepo
	DLQ         dlqCounter
	Retention   int
	MinAttempts int
}

// NewOutboxRetentionJob prunes delivered outbox rows, and rows parked after
// exhausting their attempts, once they are older than the retention window.
func NewOutboxRetentionJob(params OutboxRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("outbox repository required")
	}
	job := &outboxRetentionJob{
		logg:        params.Logger,
		db:          params.DB,
		repo:        params.Repository,
		dlq:         params.DLQ,
		retention:   params.Retention,
		minAttempts: params.MinAttempts,
		now:         time.Now,
	}
	if job.retention <= 0 {
		job.retention = outboxRetentionDays
	}
	if job.minAttempts <= 0 {
		job.minAttempts = outboxMinAttempts
	}
	return job, nil
}

type outboxRetentionJob struct {
	logg        *logger.Logger
	db          txRunner
	repo        outboxRetentionRepo
	dlq         dlqCounter
	retention   int
	minAttempts int
	now         func() time.Time
}

func (j *outboxRetentionJob) Name() string { return "outbox-retention" }

func (j *outboxRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().AddDate(0, 0, -j.retention)
	var deleted int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.DeletePublishedBefore(tx, cutoff, j.minAttempts)
		deleted = rows
		return err
	})
	if err != nil {
		return fmt.Errorf("outbox retention: %w", err)
	}
	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	}), "outbox retention cleanup complete")
	j.reportDLQ(ctx)
	return nil
}

// reportDLQ warns about parked events. Dead letters are kept for manual
// replay and never pruned here.
func (j *outboxRetentionJob) reportDLQ(ctx context.Context) {
	if j.dlq == nil {
		return
	}
	counts, err := j.dlq.CountByReason(ctx)
	if err != nil {
		j.logg.Error(ctx, "count outbox dlq", err)
		return
	}
	var total int64
	fields := map[string]any{}
	for reason, n := range counts {
		fields["dlq_"+string(reason)] = n
		total += n
	}
	if total == 0 {
		return
	}
	j.logg.Warn(j.logg.WithFields(ctx, fields), "outbox dlq has parked events")
}
