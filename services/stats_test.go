package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/models"
)

func TestOwnerStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(StatsOptions{DB: db, Now: func() time.Time { return testNow }, Logger: quietLogger()})

	partner := seedUser(t, db, "Karim", "+8801811111111", models.RoleAdmin, 0)
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 0)
	gym := seedGym(t, db, "iron-house", partner.ID, 2)
	yesterday := testNow.AddDate(0, 0, -1)

	seedTransaction(t, db, models.Transaction{UserID: partner.ID, Amount: decimal.NewFromInt(300), Type: models.TransactionCreditEarned, Status: models.TransactionCompleted, Credits: 2, CreatedAt: testNow.Add(-time.Hour)})
	seedTransaction(t, db, models.Transaction{UserID: user.ID, Amount: decimal.NewFromInt(1500), Type: models.TransactionCreditPurchase, Status: models.TransactionCompleted, Credits: 10, CreatedAt: testNow.Add(-2 * time.Hour)})
	seedTransaction(t, db, models.Transaction{UserID: partner.ID, Amount: decimal.NewFromInt(150), Type: models.TransactionCreditEarned, Status: models.TransactionCompleted, Credits: 1, CreatedAt: yesterday})
	seedTransaction(t, db, models.Transaction{UserID: user.ID, Amount: decimal.NewFromInt(999), Type: models.TransactionCreditPurchase, Status: models.TransactionPending, Credits: 7, CreatedAt: testNow})

	seedCheckIn(t, db, user, gym, 2, testNow.Add(-time.Hour))
	seedCheckIn(t, db, user, gym, 2, testNow.Add(-3*time.Hour))
	seedCheckIn(t, db, user, gym, 1, yesterday)

	stats, err := svc.OwnerStats(context.Background())
	require.NoError(t, err)
	require.True(t, stats.TodayRevenue.Equal(decimal.NewFromInt(1800)), "today revenue %s", stats.TodayRevenue)
	require.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(1950)), "total revenue %s", stats.TotalRevenue)
	require.Equal(t, 2, stats.TodayCheckIns)
	require.Equal(t, 2, stats.TodayCredits)
	require.Equal(t, 3, stats.TotalAllTimeCredits)
}

func TestAllCheckInsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(StatsOptions{DB: db, Logger: quietLogger()})

	partner := seedUser(t, db, "Karim", "+8801811111111", models.RoleAdmin, 0)
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 0)
	gym := seedGym(t, db, "iron-house", partner.ID, 1)

	older := seedCheckIn(t, db, user, gym, 1, testNow.Add(-2*time.Hour))
	newer := seedCheckIn(t, db, user, gym, 1, testNow)
	middle := seedCheckIn(t, db, user, gym, 1, testNow.Add(-time.Hour))

	checkIns, err := svc.AllCheckIns(context.Background())
	require.NoError(t, err)
	require.Len(t, checkIns, 3)
	require.Equal(t, []uint{newer.ID, middle.ID, older.ID}, []uint{checkIns[0].ID, checkIns[1].ID, checkIns[2].ID})
}

func TestPartnerStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(StatsOptions{DB: db, Now: func() time.Time { return testNow }, Logger: quietLogger()})

	partner := seedUser(t, db, "Karim", "+8801811111111", models.RoleAdmin, 0)
	rival := seedUser(t, db, "Bashir", "+8801822222222", models.RoleAdmin, 0)
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 0)
	gymA := seedGym(t, db, "iron-house", partner.ID, 2)
	gymB := seedGym(t, db, "iron-house-banani", partner.ID, 1)
	rivalGym := seedGym(t, db, "flex-zone", rival.ID, 3)

	february := time.Date(2026, time.February, 20, 18, 0, 0, 0, time.UTC)
	august := time.Date(2025, time.August, 20, 18, 0, 0, 0, time.UTC)

	seedCheckIn(t, db, user, gymA, 2, testNow.Add(-48*time.Hour))
	seedCheckIn(t, db, user, gymB, 1, testNow.Add(-24*time.Hour))
	latest := seedCheckIn(t, db, user, gymA, 2, testNow.Add(-time.Hour))
	seedCheckIn(t, db, user, gymA, 2, february)
	seedCheckIn(t, db, user, rivalGym, 3, testNow)

	earned := func(partnerID uint, credits int, at time.Time) {
		seedTransaction(t, db, models.Transaction{
			UserID:    partnerID,
			Amount:    decimal.NewFromInt(int64(150 * credits)),
			Type:      models.TransactionCreditEarned,
			Status:    models.TransactionCompleted,
			Credits:   credits,
			CreatedAt: at,
		})
	}
	earned(partner.ID, 2, testNow.Add(-48*time.Hour))
	earned(partner.ID, 1, testNow.Add(-24*time.Hour))
	earned(partner.ID, 2, testNow.Add(-time.Hour))
	earned(partner.ID, 2, february)
	earned(partner.ID, 4, august)
	earned(rival.ID, 3, testNow)

	stats, err := svc.PartnerStats(context.Background(), partner.ID)
	require.NoError(t, err)
	require.Equal(t, MonthlyStats{CheckIns: 3, Payout: 5}, stats.MonthlyStats)
	require.Equal(t, []MonthlyPayout{
		{Month: "March 2026", CheckIns: 3, Payout: 5},
		{Month: "February 2026", CheckIns: 1, Payout: 2},
	}, stats.PayoutHistory)

	require.Len(t, stats.RecentCheckIns, 4)
	require.Equal(t, latest.ID, stats.RecentCheckIns[0].ID)
	require.Equal(t, 2, stats.RecentCheckIns[0].EarnedCredit)
	for _, ci := range stats.RecentCheckIns {
		require.NotEqual(t, rivalGym.ID, ci.GymID)
	}
}

func TestPartnerStatsWithoutGyms(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(StatsOptions{DB: db, Now: func() time.Time { return testNow }, Logger: quietLogger()})
	partner := seedUser(t, db, "Karim", "+8801811111111", models.RoleAdmin, 0)

	stats, err := svc.PartnerStats(context.Background(), partner.ID)
	require.NoError(t, err)
	require.Equal(t, MonthlyStats{}, stats.MonthlyStats)
	require.NotNil(t, stats.PayoutHistory)
	require.Empty(t, stats.PayoutHistory)
	require.NotNil(t, stats.RecentCheckIns)
	require.Empty(t, stats.RecentCheckIns)
}

func TestPartnerStatsRequiresPartner(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(StatsOptions{DB: db, Logger: quietLogger()})
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 0)

	_, err := svc.PartnerStats(context.Background(), user.ID)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
}
