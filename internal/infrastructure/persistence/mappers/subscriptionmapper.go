package mappers

import (
	"podelam/internal/domain/trainer"
	"podelam/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*trainer.Subscription, error)
	ToModel(entity *trainer.Subscription) *models.SubscriptionModel
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*trainer.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	return trainer.ReconstructSubscription(
		model.ID,
		model.UserID,
		trainer.PlanID(model.PlanID),
		model.TrainerID,
		model.AllTrainers,
		model.StartedAt,
		model.ExpiresAt,
		model.SessionsTotal,
		model.SessionsUsed,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *SubscriptionMapperImpl) ToModel(entity *trainer.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriptionModel{
		ID:            entity.ID(),
		UserID:        entity.UserID(),
		PlanID:        string(entity.PlanID()),
		TrainerID:     entity.TrainerID(),
		AllTrainers:   entity.AllTrainers(),
		StartedAt:     entity.StartedAt(),
		ExpiresAt:     entity.ExpiresAt(),
		SessionsTotal: entity.SessionsTotal(),
		SessionsUsed:  entity.SessionsUsed(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}
