package repositories

import (
	"errors"
	"time"

	"dynastytrade/internal/models"
	"dynastytrade/internal/utils"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found or expired")

type SessionRepository struct {
	DB *gorm.DB
}

// CreateSession issues a fresh opaque token for the user, valid for the
// given duration.
func (r *SessionRepository) CreateSession(userID uint, duration time.Duration) (*models.Session, error) {
	token, err := utils.NewSessionToken()
	if err != nil {
		return nil, err
	}
	session := &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(duration),
	}
	if err := r.DB.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// ResolveSession returns the owning user while the token is live. A token at
// or past its expiry instant counts as absent and the row is purged lazily.
func (r *SessionRepository) ResolveSession(token string) (*models.User, error) {
	var session models.Session
	err := r.DB.First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if !time.Now().Before(session.ExpiresAt) {
		r.DB.Unscoped().Delete(&session)
		return nil, ErrSessionNotFound
	}

	var user models.User
	if err := r.DB.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &user, nil
}

// DestroySession removes a token unconditionally. Deleting a token that does
// not exist is not an error.
func (r *SessionRepository) DestroySession(token string) error {
	return r.DB.Unscoped().Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteExpired purges sessions whose expiry is at or before the given time.
func (r *SessionRepository) DeleteExpired(before time.Time) (int64, error) {
	tx := r.DB.Unscoped().Where("expires_at <= ?", before).Delete(&models.Session{})
	return tx.RowsAffected, tx.Error
}
