package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nutrilog/internal/model"
)

// SubscriberRepository tracks chats receiving the daily summary.
type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Subscribe registers a chat, reporting whether it was newly added.
func (r *SubscriberRepository) Subscribe(ctx context.Context, chatID int64) (bool, error) {
	var sub model.Subscriber
	db := r.db.WithContext(ctx)
	err := db.Where("chat_id = ?", chatID).First(&sub).Error
	switch {
	case err == nil:
		return false, nil
	case err == gorm.ErrRecordNotFound:
		sub = model.Subscriber{ChatID: chatID}
		if err := db.Create(&sub).Error; err != nil {
			return false, fmt.Errorf("create subscriber: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("find subscriber: %w", err)
	}
}

func (r *SubscriberRepository) Unsubscribe(ctx context.Context, chatID int64) error {
	if err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).
		Delete(&model.Subscriber{}).Error; err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}

func (r *SubscriberRepository) ListAll(ctx context.Context) ([]model.Subscriber, error) {
	var subs []model.Subscriber
	if err := r.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
