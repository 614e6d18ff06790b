package jobs

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/IkingariSolorzano/gymcredit-be/services"
)

type fakeReconciler struct {
	runs   int
	report *services.ReconcileReport
	err    error
}

func (f *fakeReconciler) Run(ctx context.Context) (*services.ReconcileReport, error) {
	f.runs++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("missing deadline")
	}
	return f.report, f.err
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestInitCronJobsRegistersReconcile(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	err := InitCronJobs(c, "", &fakeReconciler{report: &services.ReconcileReport{}}, quietLogger())
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
}

func TestInitCronJobsRejectsBadSpec(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	err := InitCronJobs(c, "every night", &fakeReconciler{}, quietLogger())
	require.Error(t, err)
	require.Empty(t, c.Entries())
}

func TestReconcileJobRuns(t *testing.T) {
	reconciler := &fakeReconciler{report: &services.ReconcileReport{
		Drifts: []services.PayoutDrift{{PartnerID: 1, CheckInCredits: 2}},
	}}
	ReconcileJob(reconciler, quietLogger())()
	require.Equal(t, 1, reconciler.runs)

	failing := &fakeReconciler{err: errors.New("db down")}
	ReconcileJob(failing, quietLogger())()
	require.Equal(t, 1, failing.runs)
}
