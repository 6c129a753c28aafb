package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminAuthService handles admin authentication operations
type AdminAuthService struct {
	db  *gorm.DB
	jwt *JWTService
	log *logrus.Entry
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(db *gorm.DB, jwt *JWTService) *AdminAuthService {
	return &AdminAuthService{
		db:  db,
		jwt: jwt,
		log: logrus.WithField("component", "auth"),
	}
}

// ════════════════════════════════════════════════════════════
// Password Management
// ════════════════════════════════════════════════════════════

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches its bcrypt hash
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword checks if a password meets minimum requirements
// Minimum 8 characters
func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// ════════════════════════════════════════════════════════════
// Login
// ════════════════════════════════════════════════════════════

// Login verifies the credentials and issues a token. Unknown email and wrong
// password return the same ErrInvalidCredentials.
func (s *AdminAuthService) Login(ctx context.Context, req models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithField("email", email).Warn("login attempt for unknown admin")
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("find admin", err)
	}

	if !VerifyPassword(admin.PasswordHash, req.Password) {
		s.log.WithField("admin_id", admin.ID).Warn("login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAdminJWT(admin.ID.String(), admin.Email, admin.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&admin).Update("last_login_at", now).Error; err != nil {
		s.log.WithError(err).WithField("admin_id", admin.ID).Warn("failed to record last login")
	} else {
		admin.LastLoginAt = &now
	}

	s.log.WithField("admin_id", admin.ID).Info("admin logged in")
	return &models.AdminLoginResponse{Admin: admin.ToResponse(), Token: token}, nil
}

func (s *AdminAuthService) GetAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("admin", id)
		}
		return nil, storeError("get admin", err)
	}
	return &admin, nil
}

// CreateAdmin registers an admin with a hashed password. An existing email is a conflict.
func (s *AdminAuthService) CreateAdmin(ctx context.Context, email, name, password, role string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalid("email", "is required")
	}
	if !ValidatePassword(password) {
		return nil, invalid("password", "must be at least 8 characters")
	}
	switch role {
	case "", models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return nil, invalid("role", "must be admin or super_admin")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := models.Admin{Email: email, Name: strings.TrimSpace(name), PasswordHash: hash, Role: role}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		if isDuplicate(err) {
			return nil, &ConflictError{Resource: "admin", Reason: "an admin with this email already exists"}
		}
		return nil, storeError("create admin", err)
	}
	return &admin, nil
}
