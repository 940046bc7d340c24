package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"messaging-be/internal/entity"
	"messaging-be/internal/mapper"
	"messaging-be/internal/model"
	"messaging-be/internal/repository/contract"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MessageRepositoryImpl) Update(ctx context.Context, message *entity.Message) error {
	m := r.mapper.ToModel(message)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MessageRepositoryImpl) FindByConversation(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error) {
	var ms []*model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *MessageRepositoryImpl) FindReplies(ctx context.Context, parentId uuid.UUID) ([]*entity.Message, error) {
	var ms []*model.Message
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentId).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *MessageRepositoryImpl) IdsByConversation(ctx context.Context, conversationId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ?", conversationId).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *MessageRepositoryImpl) IdsByAuthor(ctx context.Context, authorId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_id = ?", authorId).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *MessageRepositoryImpl) DeleteByIds(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Message{}).Error
}

func (r *MessageRepositoryImpl) ClearEditor(ctx context.Context, editorId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("editor_id = ?", editorId).
		Update("editor_id", nil).Error
}

func (r *MessageRepositoryImpl) CreateHistory(ctx context.Context, history *entity.MessageHistory) error {
	m := r.mapper.HistoryToModel(history)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*history = *r.mapper.HistoryToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) HistoryByMessage(ctx context.Context, messageId uuid.UUID) ([]*entity.MessageHistory, error) {
	var ms []*model.MessageHistory
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageId).
		Order("edited_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.HistoryToEntities(ms), nil
}

func (r *MessageRepositoryImpl) ClearHistoryEditor(ctx context.Context, editorId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.MessageHistory{}).
		Where("editor_id = ?", editorId).
		Update("editor_id", nil).Error
}

func (r *MessageRepositoryImpl) DeleteHistoryByMessageIds(ctx context.Context, messageIds []uuid.UUID) error {
	if len(messageIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("message_id IN ?", messageIds).
		Delete(&model.MessageHistory{}).Error
}
