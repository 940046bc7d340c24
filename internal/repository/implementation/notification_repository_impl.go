package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"messaging-be/internal/entity"
	"messaging-be/internal/mapper"
	"messaging-be/internal/model"
	"messaging-be/internal/repository/contract"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

// Create inserts with ON CONFLICT DO NOTHING on (user_id, message_id), so a
// retried fan-out never produces a duplicate row.
func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	m := r.mapper.ToModel(notification)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "message_id"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *NotificationRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*entity.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userId)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	var ms []*model.Notification
	if err := query.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, notificationId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", notificationId).
		Update("is_read", true).Error
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Update("is_read", true).Error
}

func (r *NotificationRepositoryImpl) DeleteByUser(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.Notification{}).Error
}

func (r *NotificationRepositoryImpl) DeleteByMessageIds(ctx context.Context, messageIds []uuid.UUID) error {
	if len(messageIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("message_id IN ?", messageIds).
		Delete(&model.Notification{}).Error
}
