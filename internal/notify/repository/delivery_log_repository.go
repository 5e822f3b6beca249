package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"farmvet-backend/internal/notify/domain"
)

// DeliveryLogRepository persists one audit row per dispatch
type DeliveryLogRepository interface {
	Record(entry *domain.DeliveryLog) error
	FindRecent(limit int) ([]domain.DeliveryLog, error)
}

type deliveryLogRepository struct {
	db *gorm.DB
}

// NewDeliveryLogRepository creates a new instance of deliveryLogRepository
func NewDeliveryLogRepository(db *gorm.DB) DeliveryLogRepository {
	return &deliveryLogRepository{
		db: db,
	}
}

func (r *deliveryLogRepository) Record(entry *domain.DeliveryLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

func (r *deliveryLogRepository) FindRecent(limit int) ([]domain.DeliveryLog, error) {
	var entries []domain.DeliveryLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
