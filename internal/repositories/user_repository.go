package repositories

import (
	"errors"
	"strings"
	"time"

	"dynastytrade/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("an account with this email already exists")
)

type UserRepository struct {
	DB *gorm.DB
}

// CreateUser stores a new account. Email comparison is case-insensitive:
// addresses are lowercased before insert and the unique index does the rest.
func (r *UserRepository) CreateUser(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.PublicID == "" {
		user.PublicID = uuid.New().String()
	}

	var count int64
	if err := r.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	if err := r.DB.Create(user).Error; err != nil {
		// concurrent signup can still trip the unique index
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}

// UpdatePlan switches the subscription tier. Any plan change resets the
// trade counter, in the same UPDATE.
func (r *UserRepository) UpdatePlan(id uint, plan models.Plan) error {
	result := r.DB.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]any{"plan": plan, "trade_count": 0})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// IncrementTradeCount bumps the usage counter by one. The increment runs in
// SQL so overlapping requests from the same account cannot lose updates.
func (r *UserRepository) IncrementTradeCount(id uint) error {
	result := r.DB.Model(&models.User{}).Where("id = ?", id).
		Update("trade_count", gorm.Expr("trade_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetStripeCustomerID(id uint, customerID string) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).
		Update("stripe_customer_id", customerID).Error
}
