package services

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/cache"
	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/validator"
	"github.com/IkingariSolorzano/gymcredit-be/websocket"
)

type GymService struct {
	db       *gorm.DB
	cache    cache.GymCache
	log      logrus.FieldLogger
	notifier Notifier
	// writes counts gym creations; List only fills the cache when no write
	// landed between its database read and the cache write.
	writes atomic.Uint64
}

type GymOptions struct {
	DB       *gorm.DB
	Cache    cache.GymCache
	Logger   logrus.FieldLogger
	Notifier Notifier
}

func NewGymService(opts GymOptions) *GymService {
	return &GymService{
		db:       opts.DB,
		cache:    opts.Cache,
		log:      orLogger(opts.Logger),
		notifier: orNotifier(opts.Notifier),
	}
}

// List returns every gym. The cache is only an accelerator: its failures are
// logged and the database answers instead. Other replicas can still race a
// fill against their own writes; the cache TTL bounds that staleness.
func (s *GymService) List(ctx context.Context) ([]models.Gym, error) {
	generation := s.writes.Load()
	if s.cache != nil {
		gyms, hit, err := s.cache.GetGyms(ctx)
		if err != nil {
			s.log.WithError(err).Warn("Gym cache read failed")
		} else if hit {
			return gyms, nil
		}
	}

	gyms := []models.Gym{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&gyms).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.cache != nil && s.writes.Load() == generation {
		if err := s.cache.SetGyms(ctx, gyms); err != nil {
			s.log.WithError(err).Warn("Gym cache write failed")
		}
	}
	return gyms, nil
}

// Create lists a new gym under an existing partner account.
func (s *GymService) Create(ctx context.Context, gym *models.Gym) (*models.Gym, error) {
	if gym.Rating == 0 {
		gym.Rating = models.DefaultGymRating
	}
	if err := validator.ValidateGym(gym); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var partner models.User
		if err := tx.First(&partner, gym.PartnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("Partner not found")
			}
			return apperrors.Internal(err)
		}
		if partner.Role != models.RoleAdmin {
			return apperrors.Validation("Gyms can only be assigned to partner accounts")
		}

		gym.ID = 0
		if err := tx.Create(gym).Error; err != nil {
			return apperrors.Internal(err)
		}

		if partner.GymID == nil {
			if err := tx.Model(&partner).Update("gym_id", gym.ID).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.writes.Add(1)
	if s.cache != nil {
		if err := s.cache.InvalidateGyms(ctx); err != nil {
			s.log.WithError(err).Warn("Gym cache invalidation failed")
		}
	}

	s.log.WithFields(logrus.Fields{"gymId": gym.ID, "partnerId": gym.PartnerID}).Info("Gym listed")
	s.notifier.Broadcast(websocket.EventGymCreated, gym.PartnerID, websocket.GymEvent{
		GymID:     gym.ID,
		GymName:   gym.Name,
		PartnerID: gym.PartnerID,
	})
	return gym, nil
}
