package repositories

import (
	"errors"

	"dynastytrade/internal/models"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionRepository struct {
	DB *gorm.DB
}

func (r *TransactionRepository) Create(txn *models.Transaction) error {
	return r.DB.Create(txn).Error
}

func (r *TransactionRepository) GetBySessionID(sessionID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.DB.First(&txn, "checkout_session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	return &txn, err
}

// UpdateStatus moves a transaction through its lifecycle. Ledger rows are
// never deleted.
func (r *TransactionRepository) UpdateStatus(sessionID string, status models.TransactionStatus, paymentIntentID string) error {
	updates := map[string]any{"status": status}
	if paymentIntentID != "" {
		updates["payment_intent_id"] = paymentIntentID
	}
	result := r.DB.Model(&models.Transaction{}).
		Where("checkout_session_id = ?", sessionID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
