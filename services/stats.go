package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/models"
)

const (
	payoutHistoryMonths = 6
	recentCheckInsLimit = 10
)

// StatsService builds dashboard figures. Rows are filtered and summed in Go
// so the results do not depend on how the database compares timestamps.
type StatsService struct {
	db  *gorm.DB
	now func() time.Time
	log logrus.FieldLogger
}

type StatsOptions struct {
	DB     *gorm.DB
	Now    func() time.Time
	Logger logrus.FieldLogger
}

func NewStatsService(opts StatsOptions) *StatsService {
	return &StatsService{
		db:  opts.DB,
		now: orClock(opts.Now),
		log: orLogger(opts.Logger),
	}
}

type OwnerStats struct {
	TodayRevenue        decimal.Decimal `json:"todayRevenue"`
	TodayCheckIns       int             `json:"todayCheckIns"`
	TodayCredits        int             `json:"todayCredits"`
	TotalAllTimeCredits int             `json:"totalAllTimeCredits"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
}

type MonthlyStats struct {
	CheckIns int `json:"checkIns"`
	Payout   int `json:"payout"`
}

type MonthlyPayout struct {
	Month    string `json:"month"`
	CheckIns int    `json:"checkIns"`
	Payout   int    `json:"payout"`
}

type PartnerCheckIn struct {
	models.CheckIn
	EarnedCredit int `json:"earnedCredit"`
}

type PartnerStats struct {
	MonthlyStats   MonthlyStats     `json:"monthlyStats"`
	PayoutHistory  []MonthlyPayout  `json:"payoutHistory"`
	RecentCheckIns []PartnerCheckIn `json:"recentCheckIns"`
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// OwnerStats reports platform revenue and usage for today and all time.
func (s *StatsService) OwnerStats(ctx context.Context) (*OwnerStats, error) {
	db := s.db.WithContext(ctx)
	now := s.now()
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	var transactions []models.Transaction
	if err := db.Where("status = ?", models.TransactionCompleted).Find(&transactions).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	var checkIns []models.CheckIn
	if err := db.Select("id", "timestamp").Find(&checkIns).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	stats := &OwnerStats{TodayRevenue: decimal.Zero, TotalRevenue: decimal.Zero}
	for _, tx := range transactions {
		isToday := within(tx.CreatedAt, today, tomorrow)
		stats.TotalRevenue = stats.TotalRevenue.Add(tx.Amount)
		if isToday {
			stats.TodayRevenue = stats.TodayRevenue.Add(tx.Amount)
		}
		if tx.Type == models.TransactionCreditEarned {
			stats.TotalAllTimeCredits += tx.Credits
			if isToday {
				stats.TodayCredits += tx.Credits
			}
		}
	}
	for _, ci := range checkIns {
		if within(ci.Timestamp, today, tomorrow) {
			stats.TodayCheckIns++
		}
	}
	return stats, nil
}

// AllCheckIns returns every check-in, newest first.
func (s *StatsService) AllCheckIns(ctx context.Context) ([]models.CheckIn, error) {
	checkIns := []models.CheckIn{}
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Order("id DESC").Find(&checkIns).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return checkIns, nil
}

// PartnerStats reports the current month, the recent payout history and the
// latest check-ins across every gym the partner operates.
func (s *StatsService) PartnerStats(ctx context.Context, partnerID uint) (*PartnerStats, error) {
	db := s.db.WithContext(ctx)

	var partner models.User
	if err := db.First(&partner, partnerID).Error; err != nil {
		return nil, notFoundOr(err, "Partner not found")
	}
	if partner.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("Forbidden")
	}

	stats := &PartnerStats{
		PayoutHistory:  []MonthlyPayout{},
		RecentCheckIns: []PartnerCheckIn{},
	}

	var gymIDs []uint
	if err := db.Model(&models.Gym{}).Where("partner_id = ?", partner.ID).Pluck("id", &gymIDs).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(gymIDs) == 0 {
		return stats, nil
	}

	var checkIns []models.CheckIn
	if err := db.Where("gym_id IN ?", gymIDs).Order("timestamp DESC").Order("id DESC").Find(&checkIns).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	var earnings []models.Transaction
	if err := db.Where("user_id = ? AND type = ? AND status = ?",
		partner.ID, models.TransactionCreditEarned, models.TransactionCompleted).
		Find(&earnings).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	loc := now.Location()
	monthStart := startOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, 0)
	historyStart := now.AddDate(0, -payoutHistoryMonths, 0)

	history := map[time.Time]*MonthlyPayout{}
	bucket := func(t time.Time) *MonthlyPayout {
		key := startOfMonth(t.In(loc))
		entry, ok := history[key]
		if !ok {
			entry = &MonthlyPayout{Month: key.Format("January 2006")}
			history[key] = entry
		}
		return entry
	}

	for _, ci := range checkIns {
		if within(ci.Timestamp, monthStart, monthEnd) {
			stats.MonthlyStats.CheckIns++
		}
		if !ci.Timestamp.Before(historyStart) {
			bucket(ci.Timestamp).CheckIns++
		}
	}
	for _, tx := range earnings {
		if within(tx.CreatedAt, monthStart, monthEnd) {
			stats.MonthlyStats.Payout += tx.Credits
		}
		if !tx.CreatedAt.Before(historyStart) {
			bucket(tx.CreatedAt).Payout += tx.Credits
		}
	}

	months := make([]time.Time, 0, len(history))
	for key := range history {
		months = append(months, key)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].After(months[j]) })
	for _, key := range months {
		stats.PayoutHistory = append(stats.PayoutHistory, *history[key])
	}

	for i, ci := range checkIns {
		if i == recentCheckInsLimit {
			break
		}
		earned := ci.CreditsUsed
		if earned <= 0 {
			earned = 1
		}
		stats.RecentCheckIns = append(stats.RecentCheckIns, PartnerCheckIn{CheckIn: ci, EarnedCredit: earned})
	}
	return stats, nil
}
