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

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation) error {
	m := r.mapper.ToModel(conversation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	rows := make([]model.ConversationParticipant, 0, len(conversation.ParticipantIds))
	for _, userId := range conversation.ParticipantIds {
		rows = append(rows, model.ConversationParticipant{
			ConversationId: m.Id,
			UserId:         userId,
		})
	}
	if len(rows) > 0 {
		if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
			return err
		}
	}
	conversation.Id = m.Id
	conversation.CreatedAt = m.CreatedAt
	return nil
}

func (r *ConversationRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var m model.Conversation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	participantIds, err := r.ParticipantIds(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m, participantIds), nil
}

func (r *ConversationRepositoryImpl) ParticipantIds(ctx context.Context, conversationId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.ConversationParticipant{}).
		Where("conversation_id = ?", conversationId).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *ConversationRepositoryImpl) IsParticipant(ctx context.Context, conversationId, userId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationId, userId).
		Count(&count).Error
	return count > 0, err
}

func (r *ConversationRepositoryImpl) ConversationIdsFor(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.ConversationParticipant{}).
		Where("user_id = ?", userId).
		Pluck("conversation_id", &ids).Error
	return ids, err
}

func (r *ConversationRepositoryImpl) RemoveParticipant(ctx context.Context, conversationId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationId, userId).
		Delete(&model.ConversationParticipant{}).Error
}

func (r *ConversationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", id).
		Delete(&model.ConversationParticipant{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Conversation{}).Error
}
