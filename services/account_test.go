package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/models"
)

func newAccountService(db *gorm.DB) *AccountService {
	return NewAccountService(AccountOptions{
		DB:           db,
		BDTPerCredit: decimal.NewFromInt(150),
		Logger:       quietLogger(),
	})
}

func TestAccountShowsRecentHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	partner := seedUser(t, db, "Karim", "+8801811111111", models.RoleAdmin, 0)
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 12)
	other := seedUser(t, db, "Jamal", "+8801912345678", models.RoleUser, 3)
	gym := seedGym(t, db, "iron-house", partner.ID, 1)

	for i := 0; i < 7; i++ {
		seedCheckIn(t, db, user, gym, 1, testNow.Add(time.Duration(i)*time.Hour))
	}
	seedCheckIn(t, db, other, gym, 1, testNow.Add(24*time.Hour))
	for i := 0; i < 6; i++ {
		seedTransaction(t, db, models.Transaction{
			UserID:    user.ID,
			Amount:    decimal.NewFromInt(int64(150 * (i + 1))),
			Type:      models.TransactionCreditPurchase,
			Status:    models.TransactionCompleted,
			Credits:   i + 1,
			CreatedAt: testNow.Add(time.Duration(i) * time.Hour),
		})
	}

	account, err := svc.Account(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "Rahim", account.User.Name)
	require.Equal(t, 12, account.User.Credits)
	require.Equal(t, DefaultPlanName, account.CurrentPlan.Name)
	require.Equal(t, "active", account.CurrentPlan.Status)
	require.Nil(t, account.CurrentPlan.NextBillingDate)

	require.Len(t, account.CheckIns, 5)
	require.True(t, account.CheckIns[0].Timestamp.Equal(testNow.Add(6*time.Hour)))
	require.True(t, account.CheckIns[4].Timestamp.Equal(testNow.Add(2*time.Hour)))

	require.Len(t, account.Transactions, 5)
	require.Equal(t, 6, account.Transactions[0].Credits)
	require.Equal(t, 2, account.Transactions[4].Credits)
}

func TestAccountUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	_, err := svc.Account(context.Background(), 42)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	_, err = svc.Credits(context.Background(), 42)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestCredits(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 8)

	credits, err := svc.Credits(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 8, credits)
}

func TestGrantCredits(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 2)

	updated, purchase, err := svc.GrantCredits(context.Background(), user.ID, 15)
	require.NoError(t, err)
	require.Equal(t, 17, updated.Credits)
	require.Equal(t, models.TransactionCreditPurchase, purchase.Type)
	require.Equal(t, models.TransactionCompleted, purchase.Status)
	require.Equal(t, 15, purchase.Credits)
	require.True(t, purchase.Amount.Equal(decimal.NewFromInt(2250)))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.Equal(t, 17, reloaded.Credits)
	require.EqualValues(t, 1, countRows(t, db, &models.Transaction{}))
}

func TestGrantCreditsRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 2)

	_, _, err := svc.GrantCredits(context.Background(), user.ID, 0)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))

	_, _, err = svc.GrantCredits(context.Background(), user.ID+10, 5)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	require.Zero(t, countRows(t, db, &models.Transaction{}))
}

func TestListPartners(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 0)
	karim := seedUser(t, db, "Karim", "+8801811111111", models.RoleAdmin, 0)
	bashir := seedUser(t, db, "Bashir", "+8801822222222", models.RoleAdmin, 0)
	seedUser(t, db, "Owner", "+8801700000000", models.RoleOwner, 0)

	partners, err := svc.ListPartners(context.Background())
	require.NoError(t, err)
	require.Equal(t, []PartnerSummary{
		{ID: bashir.ID, Name: "Bashir"},
		{ID: karim.ID, Name: "Karim"},
	}, partners)
}

func TestSetRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)
	user := seedUser(t, db, "Rahim", "+8801712345678", models.RoleUser, 0)

	updated, err := svc.SetRole(context.Background(), user.ID, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, updated.Role)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.Equal(t, models.RoleAdmin, reloaded.Role)

	_, err = svc.SetRole(context.Background(), user.ID, models.UserRole("root"))
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))

	_, err = svc.SetRole(context.Background(), user.ID+10, models.RoleUser)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}
