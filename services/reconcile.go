package services

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/IkingariSolorzano/gymcredit-be/models"
)

// OrphanGym is a gym whose partner account cannot receive payouts. Every
// check-in at such a gym is rolled back.
type OrphanGym struct {
	GymID     uint   `json:"gymId"`
	GymName   string `json:"gymName"`
	PartnerID uint   `json:"partnerId"`
	Reason    string `json:"reason"`
}

// PayoutDrift is a partner whose earnings ledger disagrees with the check-ins
// at their gyms.
type PayoutDrift struct {
	PartnerID      uint `json:"partnerId"`
	CheckInCredits int  `json:"checkInCredits"`
	EarnedCredits  int  `json:"earnedCredits"`
	Difference     int  `json:"difference"`
}

type ReconcileReport struct {
	StartedAt   time.Time     `json:"startedAt"`
	GymsScanned int           `json:"gymsScanned"`
	Orphans     []OrphanGym   `json:"orphans"`
	Drifts      []PayoutDrift `json:"drifts"`
}

// Clean reports whether the run found nothing to fix.
func (r *ReconcileReport) Clean() bool {
	return len(r.Orphans) == 0 && len(r.Drifts) == 0
}

const (
	OrphanPartnerMissing = "partner_missing"
	OrphanNotPartner     = "partner_role_mismatch"
)

// ReconcileService audits partner payouts against recorded check-ins.
type ReconcileService struct {
	db  *gorm.DB
	now func() time.Time
	log logrus.FieldLogger
}

type ReconcileOptions struct {
	DB     *gorm.DB
	Now    func() time.Time
	Logger logrus.FieldLogger
}

func NewReconcileService(opts ReconcileOptions) *ReconcileService {
	return &ReconcileService{
		db:  opts.DB,
		now: orClock(opts.Now),
		log: orLogger(opts.Logger),
	}
}

func (s *ReconcileService) Run(ctx context.Context) (*ReconcileReport, error) {
	db := s.db.WithContext(ctx)
	report := &ReconcileReport{
		StartedAt: s.now(),
		Orphans:   []OrphanGym{},
		Drifts:    []PayoutDrift{},
	}

	var gyms []models.Gym
	if err := db.Find(&gyms).Error; err != nil {
		return nil, err
	}
	report.GymsScanned = len(gyms)

	partnerIDs := make([]uint, 0, len(gyms))
	for _, gym := range gyms {
		partnerIDs = append(partnerIDs, gym.PartnerID)
	}

	var partners []models.User
	if len(partnerIDs) > 0 {
		if err := db.Where("id IN ?", partnerIDs).Find(&partners).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[uint]models.User, len(partners))
	for _, p := range partners {
		byID[p.ID] = p
	}

	gymPartner := make(map[uint]uint, len(gyms))
	for _, gym := range gyms {
		gymPartner[gym.ID] = gym.PartnerID
		partner, ok := byID[gym.PartnerID]
		switch {
		case !ok:
			report.Orphans = append(report.Orphans, OrphanGym{GymID: gym.ID, GymName: gym.Name, PartnerID: gym.PartnerID, Reason: OrphanPartnerMissing})
		case partner.Role != models.RoleAdmin:
			report.Orphans = append(report.Orphans, OrphanGym{GymID: gym.ID, GymName: gym.Name, PartnerID: gym.PartnerID, Reason: OrphanNotPartner})
		}
	}

	var checkIns []models.CheckIn
	if err := db.Select("id", "gym_id", "credits_used").Find(&checkIns).Error; err != nil {
		return nil, err
	}
	spent := map[uint]int{}
	for _, ci := range checkIns {
		if partnerID, ok := gymPartner[ci.GymID]; ok {
			spent[partnerID] += ci.CreditsUsed
		}
	}

	var earnings []models.Transaction
	if err := db.Select("id", "user_id", "credits").
		Where("type = ? AND status = ?", models.TransactionCreditEarned, models.TransactionCompleted).
		Find(&earnings).Error; err != nil {
		return nil, err
	}
	earned := map[uint]int{}
	for _, tx := range earnings {
		earned[tx.UserID] += tx.Credits
	}

	seen := map[uint]struct{}{}
	for id := range spent {
		seen[id] = struct{}{}
	}
	for id := range earned {
		if _, ok := byID[id]; ok {
			seen[id] = struct{}{}
		}
	}
	for id := range seen {
		if spent[id] != earned[id] {
			report.Drifts = append(report.Drifts, PayoutDrift{
				PartnerID:      id,
				CheckInCredits: spent[id],
				EarnedCredits:  earned[id],
				Difference:     spent[id] - earned[id],
			})
		}
	}
	sort.Slice(report.Drifts, func(i, j int) bool { return report.Drifts[i].PartnerID < report.Drifts[j].PartnerID })

	for _, o := range report.Orphans {
		s.log.WithFields(logrus.Fields{"gymId": o.GymID, "partnerId": o.PartnerID, "reason": o.Reason}).
			Warn("Gym cannot accept check-ins")
	}
	for _, d := range report.Drifts {
		s.log.WithFields(logrus.Fields{
			"partnerId":      d.PartnerID,
			"checkInCredits": d.CheckInCredits,
			"earnedCredits":  d.EarnedCredits,
		}).Error("Partner payout drift")
	}
	s.log.WithFields(logrus.Fields{
		"gyms":    report.GymsScanned,
		"orphans": len(report.Orphans),
		"drifts":  len(report.Drifts),
	}).Info("Payout reconciliation finished")
	return report, nil
}
