package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/validator"
)

const DefaultTokenTTL = 30 * 24 * time.Hour

type AuthService struct {
	db         *gorm.DB
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
	log        logrus.FieldLogger
}

type AuthOptions struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	Now        func() time.Time
	Logger     logrus.FieldLogger
}

func NewAuthService(opts AuthOptions) *AuthService {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		db:         opts.DB,
		secret:     []byte(opts.JWTSecret),
		tokenTTL:   ttl,
		bcryptCost: cost,
		now:        orClock(opts.Now),
		log:        orLogger(opts.Logger),
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(bytes), err
}

func (s *AuthService) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken signs a session token carrying the user's id, mobile and role.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := middleware.Claims{
		UserID: user.ID,
		Mobile: user.Mobile,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *AuthService) Login(ctx context.Context, mobile, password string) (*models.User, string, error) {
	if mobile == "" || password == "" {
		return nil, "", apperrors.Validation("Mobile number and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("mobile = ?", mobile).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.Unauthorized("Invalid mobile number or password")
		}
		return nil, "", apperrors.Internal(err)
	}

	if !s.CheckPassword(password, user.Password) {
		return nil, "", apperrors.Unauthorized("Invalid mobile number or password")
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}

	return &user, token, nil
}

// CreateUser validates and stores a new account with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, name, mobile, password string, role models.UserRole) (*models.User, error) {
	if err := validator.ValidateSignup(name, mobile, password); err != nil {
		return nil, err
	}
	if role == "" {
		role = models.RoleUser
	}
	if err := validator.ValidateRole(role); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("mobile = ?", mobile).Count(&count).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if count > 0 {
		return nil, apperrors.UserExists()
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := models.User{
		Name:     strings.TrimSpace(name),
		Mobile:   mobile,
		Password: hashedPassword,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.UserExists()
		}
		return nil, apperrors.Internal(err)
	}

	s.log.WithFields(logrus.Fields{"userId": user.ID, "role": user.Role}).Info("Account created")
	return &user, nil
}
