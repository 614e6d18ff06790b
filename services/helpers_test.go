package services

import (
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/IkingariSolorzano/gymcredit-be/config"
	"github.com/IkingariSolorzano/gymcredit-be/models"
)

var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := config.OpenDatabase(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type event struct {
	Type      string
	PartnerID uint
	Payload   interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []event
}

func (n *recordingNotifier) Broadcast(eventType string, partnerID uint, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event{Type: eventType, PartnerID: partnerID, Payload: payload})
}

func (n *recordingNotifier) Events() []event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]event(nil), n.events...)
}

func seedUser(t *testing.T, db *gorm.DB, name, mobile string, role models.UserRole, credits int) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Mobile:   mobile,
		Password: "not-a-real-hash",
		Role:     role,
		Credits:  credits,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedGym(t *testing.T, db *gorm.DB, name string, partnerID uint, creditCost int) *models.Gym {
	t.Helper()
	gym := &models.Gym{
		Name:       name,
		Address:    "House 12, Road 5, Dhanmondi",
		District:   "Dhaka",
		Image:      "https://example.com/" + name + ".jpg",
		OpenTime:   "06:00",
		CloseTime:  "22:00",
		Rating:     4.5,
		PartnerID:  partnerID,
		CreditCost: creditCost,
	}
	require.NoError(t, db.Create(gym).Error)
	return gym
}

func seedCheckIn(t *testing.T, db *gorm.DB, user *models.User, gym *models.Gym, credits int, at time.Time) *models.CheckIn {
	t.Helper()
	ci := &models.CheckIn{
		UserID:      user.ID,
		UserName:    user.Name,
		UserMobile:  user.Mobile,
		GymID:       gym.ID,
		GymName:     gym.Name,
		GymAddress:  gym.Address,
		CreditsUsed: credits,
		Timestamp:   at,
	}
	require.NoError(t, db.Create(ci).Error)
	return ci
}

func seedTransaction(t *testing.T, db *gorm.DB, tx models.Transaction) *models.Transaction {
	t.Helper()
	if tx.UserName == "" {
		tx.UserName = "seed"
		tx.UserMobile = "+8801700000009"
	}
	require.NoError(t, db.Create(&tx).Error)
	return &tx
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
