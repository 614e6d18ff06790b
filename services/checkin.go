package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/metrics"
	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/websocket"
)

// CheckInCooldown is the minimum time between two check-ins of one user.
const CheckInCooldown = 10 * time.Minute

// ErrPartnerMissing means a gym points at a partner account that does not exist.
var ErrPartnerMissing = errors.New("gym partner not found")

type CheckInService struct {
	db           *gorm.DB
	bdtPerCredit decimal.Decimal
	cooldown     time.Duration
	now          func() time.Time
	log          logrus.FieldLogger
	notifier     Notifier
}

type CheckInOptions struct {
	DB           *gorm.DB
	BDTPerCredit decimal.Decimal
	Now          func() time.Time
	Logger       logrus.FieldLogger
	Notifier     Notifier
}

func NewCheckInService(opts CheckInOptions) *CheckInService {
	return &CheckInService{
		db:           opts.DB,
		bdtPerCredit: opts.BDTPerCredit,
		cooldown:     CheckInCooldown,
		now:          orClock(opts.Now),
		log:          orLogger(opts.Logger),
		notifier:     orNotifier(opts.Notifier),
	}
}

type CheckInResult struct {
	NewCredits int            `json:"newCredits"`
	CheckIn    models.CheckIn `json:"checkIn"`
}

// CheckIn charges userID for a visit to gymID and pays the gym's partner.
// All reads and writes share one database transaction; the user and partner
// rows are locked so concurrent check-ins serialize.
func (s *CheckInService) CheckIn(ctx context.Context, userID, gymID uint) (*CheckInResult, error) {
	var (
		result  CheckInResult
		partner uint
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gym models.Gym
		if err := tx.First(&gym, gymID).Error; err != nil {
			return notFoundOr(err, "Gym not found")
		}
		creditCost := gym.EffectiveCreditCost()

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return notFoundOr(err, "User not found")
		}

		now := s.now()
		if user.LastCheckInAt != nil {
			elapsed := now.Sub(*user.LastCheckInAt)
			if elapsed < s.cooldown {
				remaining := s.cooldown - elapsed
				if remaining > s.cooldown {
					// last check-in stamped in the future by a skewed clock
					remaining = s.cooldown
				}
				return apperrors.Cooldown(int(math.Ceil(float64(remaining.Milliseconds()) / 60000)))
			}
		}

		if user.Credits < creditCost {
			return apperrors.InsufficientCredits(creditCost)
		}

		user.Credits -= creditCost
		user.LastCheckInAt = &now
		if err := tx.Save(&user).Error; err != nil {
			return apperrors.Internal(fmt.Errorf("debit user %d: %w", user.ID, err))
		}

		checkIn := models.CheckIn{
			UserID:      user.ID,
			UserName:    user.Name,
			UserMobile:  user.Mobile,
			GymID:       gym.ID,
			GymName:     gym.Name,
			GymAddress:  gym.Address,
			CreditsUsed: creditCost,
			Timestamp:   now,
		}
		if err := tx.Create(&checkIn).Error; err != nil {
			return apperrors.Internal(fmt.Errorf("record check-in: %w", err))
		}

		if err := s.payPartner(tx, &gym, &user, creditCost); err != nil {
			return err
		}

		result = CheckInResult{NewCredits: user.Credits, CheckIn: checkIn}
		partner = gym.PartnerID
		return nil
	})
	if err != nil {
		metrics.ObserveCheckIn(checkInOutcome(err), 0)
		return nil, err
	}

	metrics.ObserveCheckIn(metrics.OutcomeSuccess, result.CheckIn.CreditsUsed)
	s.log.WithFields(logrus.Fields{
		"userId":      userID,
		"gymId":       gymID,
		"creditsUsed": result.CheckIn.CreditsUsed,
		"newCredits":  result.NewCredits,
	}).Info("Check-in completed")

	s.notifier.Broadcast(websocket.EventCheckInCreated, partner, websocket.CheckInEvent{
		CheckInID:   result.CheckIn.ID,
		GymID:       result.CheckIn.GymID,
		GymName:     result.CheckIn.GymName,
		PartnerID:   partner,
		UserName:    result.CheckIn.UserName,
		CreditsUsed: result.CheckIn.CreditsUsed,
		Timestamp:   result.CheckIn.Timestamp,
	})
	return &result, nil
}

// payPartner credits the gym's partner and writes the earning to the ledger.
// A missing partner aborts the whole check-in so the user is never charged
// without the partner being paid.
func (s *CheckInService) payPartner(tx *gorm.DB, gym *models.Gym, user *models.User, credits int) error {
	var partner models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&partner, gym.PartnerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.WithFields(logrus.Fields{
			"gymId":     gym.ID,
			"partnerId": gym.PartnerID,
			"userId":    user.ID,
		}).Error("CRITICAL: partner not found for gym, check-in rolled back")
		return apperrors.Internal(fmt.Errorf("gym %d: %w", gym.ID, ErrPartnerMissing))
	}
	if err != nil {
		return apperrors.Internal(fmt.Errorf("load partner %d: %w", gym.PartnerID, err))
	}

	partner.Credits += credits
	if err := tx.Save(&partner).Error; err != nil {
		return apperrors.Internal(fmt.Errorf("credit partner %d: %w", partner.ID, err))
	}

	earning := models.Transaction{
		UserID:     partner.ID,
		UserName:   partner.Name,
		UserMobile: partner.Mobile,
		Amount:     s.bdtPerCredit.Mul(decimal.NewFromInt(int64(credits))),
		Type:       models.TransactionCreditEarned,
		Status:     models.TransactionCompleted,
		Credits:    credits,
	}
	if err := tx.Create(&earning).Error; err != nil {
		return apperrors.Internal(fmt.Errorf("record partner earning: %w", err))
	}
	return nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(message)
	}
	return apperrors.Internal(err)
}

func checkInOutcome(err error) string {
	appErr, ok := apperrors.As(err)
	if !ok {
		return metrics.OutcomeError
	}
	switch appErr.Code {
	case apperrors.ErrCodeCooldown:
		return metrics.OutcomeCooldown
	case apperrors.ErrCodeInsufficientCredits:
		return metrics.OutcomeInsufficientCredits
	case apperrors.ErrCodeNotFound:
		return metrics.OutcomeNotFound
	}
	return metrics.OutcomeError
}
