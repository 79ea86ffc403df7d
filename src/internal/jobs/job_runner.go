package jobs

import (
	"context"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

type LedgerReader interface {
	List(ctx context.Context) ([]domain.TransactionRecord, error)
}

type DigestSender interface {
	SendAdminDigest(ctx context.Context, subject, body string) error
}

// JobRunner holds the dependencies of scheduled jobs.
type JobRunner struct {
	ledger  LedgerReader
	digest  DigestSender
	timeout time.Duration
	now     func() time.Time
}

func NewJobRunner(ledger LedgerReader, digest DigestSender, timeout time.Duration) *JobRunner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &JobRunner{
		ledger:  ledger,
		digest:  digest,
		timeout: timeout,
		now:     time.Now,
	}
}

func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", nil, logger.Fields{"job": jobName, "panic": r})
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	start := jr.now()
	logger.Info("job started", logger.Fields{"job": jobName})
	if err := jobFunc(ctx); err != nil {
		logger.Error("job failed", err, logger.Fields{"job": jobName})
		return
	}
	logger.Info("job completed", logger.Fields{
		"job":        jobName,
		"durationMs": jr.now().Sub(start).Milliseconds(),
	})
}
