package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/IkingariSolorzano/gymcredit-be/services"
)

const (
	DefaultReconcileSpec = "0 3 * * *"
	reconcileTimeout     = 5 * time.Minute
)

// Reconciler audits partner payouts.
type Reconciler interface {
	Run(ctx context.Context) (*services.ReconcileReport, error)
}

// InitCronJobs registers the scheduled jobs on c and starts it.
func InitCronJobs(c *cron.Cron, spec string, reconciler Reconciler, log logrus.FieldLogger) error {
	if spec == "" {
		spec = DefaultReconcileSpec
	}

	_, err := c.AddFunc(spec, ReconcileJob(reconciler, log))
	if err != nil {
		return err
	}

	c.Start()
	log.WithField("reconcile", spec).Info("Cron jobs initialized")
	return nil
}

// ReconcileJob wraps one reconciliation run for the scheduler.
func ReconcileJob(reconciler Reconciler, log logrus.FieldLogger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		log.Info("Running payout reconciliation")
		report, err := reconciler.Run(ctx)
		if err != nil {
			log.WithError(err).Error("Payout reconciliation failed")
			return
		}
		if !report.Clean() {
			log.WithFields(logrus.Fields{
				"orphans": len(report.Orphans),
				"drifts":  len(report.Drifts),
			}).Warn("Payout reconciliation found problems")
		}
	}
}
