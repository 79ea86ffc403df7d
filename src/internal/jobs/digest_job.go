package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/usecase/services"
)

// SendAdminDigest emails the admin the pending count and the seven-day totals.
func (jr *JobRunner) SendAdminDigest() {
	jr.runWithRecovery("SendAdminDigest", jr.sendAdminDigest)
}

func (jr *JobRunner) sendAdminDigest(ctx context.Context) error {
	records, err := jr.ledger.List(ctx)
	if err != nil {
		return fmt.Errorf("list ledger: %w", err)
	}

	now := jr.now().UTC()
	summary := services.Summarize(records, now)

	var b strings.Builder
	fmt.Fprintf(&b, "Daily summary for %s (UTC)\n\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "Awaiting approval: %d\n", summary.PendingCount)
	fmt.Fprintf(&b, "Total transactions: %d\n", summary.TotalTransactions)
	fmt.Fprintf(&b, "Distinct senders: %d\n\n", summary.DistinctSenders)
	b.WriteString("Completed volume and fees, last 7 days (USD):\n")
	for _, day := range summary.Days {
		fmt.Fprintf(&b, "%s %s  volume %s  fees %s\n", day.Label, day.Date, day.Volume, day.Revenue)
	}

	subject := fmt.Sprintf("SomalUganda Remit daily digest: %d awaiting approval", summary.PendingCount)
	return jr.digest.SendAdminDigest(ctx, subject, b.String())
}
