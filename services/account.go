package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/validator"
)

const (
	accountHistoryLimit = 5
	DefaultPlanName     = "Basic Plan"
)

type AccountService struct {
	db           *gorm.DB
	bdtPerCredit decimal.Decimal
	log          logrus.FieldLogger
}

type AccountOptions struct {
	DB           *gorm.DB
	BDTPerCredit decimal.Decimal
	Logger       logrus.FieldLogger
}

func NewAccountService(opts AccountOptions) *AccountService {
	return &AccountService{
		db:           opts.DB,
		bdtPerCredit: opts.BDTPerCredit,
		log:          orLogger(opts.Logger),
	}
}

type AccountUser struct {
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"createdAt"`
}

type CurrentPlan struct {
	Name            string     `json:"name"`
	Credits         int        `json:"credits"`
	Status          string     `json:"status"`
	NextBillingDate *time.Time `json:"nextBillingDate"`
}

type AccountCheckIn struct {
	ID         uint      `json:"id"`
	GymName    string    `json:"gymName"`
	GymAddress string    `json:"gymAddress"`
	Timestamp  time.Time `json:"timestamp"`
}

type AccountTransaction struct {
	ID        uint                     `json:"id"`
	Amount    decimal.Decimal          `json:"amount"`
	Type      models.TransactionType   `json:"type"`
	Status    models.TransactionStatus `json:"status"`
	Credits   int                      `json:"credits"`
	CreatedAt time.Time                `json:"createdAt"`
}

// Account is what a member sees on their account page.
type Account struct {
	User         AccountUser          `json:"user"`
	CurrentPlan  CurrentPlan          `json:"currentPlan"`
	CheckIns     []AccountCheckIn     `json:"checkIns"`
	Transactions []AccountTransaction `json:"transactions"`
}

type PartnerSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (s *AccountService) Credits(ctx context.Context, userID uint) (int, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("id", "credits").First(&user, userID).Error; err != nil {
		return 0, notFoundOr(err, "User not found")
	}
	return user.Credits, nil
}

func (s *AccountService) Account(ctx context.Context, userID uint) (*Account, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	var checkIns []models.CheckIn
	if err := db.Where("user_id = ?", user.ID).
		Order("timestamp DESC").
		Limit(accountHistoryLimit).
		Find(&checkIns).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	var transactions []models.Transaction
	if err := db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(accountHistoryLimit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	account := &Account{
		User: AccountUser{
			Name:      user.Name,
			Mobile:    user.Mobile,
			Credits:   user.Credits,
			CreatedAt: user.CreatedAt,
		},
		CurrentPlan: CurrentPlan{
			Name:    DefaultPlanName,
			Credits: user.Credits,
			Status:  "active",
		},
		CheckIns:     make([]AccountCheckIn, 0, len(checkIns)),
		Transactions: make([]AccountTransaction, 0, len(transactions)),
	}
	for _, ci := range checkIns {
		account.CheckIns = append(account.CheckIns, AccountCheckIn{
			ID:         ci.ID,
			GymName:    ci.GymName,
			GymAddress: ci.GymAddress,
			Timestamp:  ci.Timestamp,
		})
	}
	for _, tx := range transactions {
		account.Transactions = append(account.Transactions, AccountTransaction{
			ID:        tx.ID,
			Amount:    tx.Amount,
			Type:      tx.Type,
			Status:    tx.Status,
			Credits:   tx.Credits,
			CreatedAt: tx.CreatedAt,
		})
	}
	return account, nil
}

func (s *AccountService) ListPartners(ctx context.Context) ([]PartnerSummary, error) {
	partners := []PartnerSummary{}
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("id", "name").
		Where("role = ?", models.RoleAdmin).
		Order("name ASC").
		Scan(&partners).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return partners, nil
}

// GrantCredits adds credits to a member's balance and records the purchase.
func (s *AccountService) GrantCredits(ctx context.Context, userID uint, credits int) (*models.User, *models.Transaction, error) {
	if credits <= 0 {
		return nil, nil, apperrors.Validation("Credits must be a positive number")
	}

	var (
		user     models.User
		purchase models.Transaction
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return notFoundOr(err, "User not found")
		}

		user.Credits += credits
		if err := tx.Model(&user).Update("credits", user.Credits).Error; err != nil {
			return apperrors.Internal(fmt.Errorf("credit user %d: %w", user.ID, err))
		}

		purchase = models.Transaction{
			UserID:     user.ID,
			UserName:   user.Name,
			UserMobile: user.Mobile,
			Amount:     s.bdtPerCredit.Mul(decimal.NewFromInt(int64(credits))),
			Type:       models.TransactionCreditPurchase,
			Status:     models.TransactionCompleted,
			Credits:    credits,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return apperrors.Internal(fmt.Errorf("record purchase: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{
		"userId":     user.ID,
		"credits":    credits,
		"newCredits": user.Credits,
	}).Info("Credits granted")
	return &user, &purchase, nil
}

func (s *AccountService) SetRole(ctx context.Context, userID uint, role models.UserRole) (*models.User, error) {
	if err := validator.ValidateRole(role); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}

	if user.Role == role {
		return &user, nil
	}
	previous := user.Role
	if err := db.Model(&user).Update("role", role).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	user.Role = role

	s.log.WithFields(logrus.Fields{"userId": user.ID, "from": previous, "to": role}).Info("Role changed")
	return &user, nil
}
