package mappers

import (
	"podelam/internal/domain/trainer"
	"podelam/internal/infrastructure/persistence/models"
)

type SessionLockMapper interface {
	ToEntity(model *models.ActiveSessionModel) (*trainer.SessionLock, error)
	ToModel(entity *trainer.SessionLock) *models.ActiveSessionModel
}

type SessionLockMapperImpl struct{}

func NewSessionLockMapper() SessionLockMapper {
	return &SessionLockMapperImpl{}
}

func (m *SessionLockMapperImpl) ToEntity(model *models.ActiveSessionModel) (*trainer.SessionLock, error) {
	if model == nil {
		return nil, nil
	}

	return trainer.ReconstructSessionLock(
		model.UserID,
		model.TrainerID,
		model.DeviceID,
		model.LastHeartbeat,
		model.StartedAt,
	)
}

func (m *SessionLockMapperImpl) ToModel(entity *trainer.SessionLock) *models.ActiveSessionModel {
	if entity == nil {
		return nil
	}

	return &models.ActiveSessionModel{
		UserID:        entity.UserID(),
		TrainerID:     entity.TrainerID(),
		DeviceID:      entity.DeviceID(),
		LastHeartbeat: entity.LastHeartbeat(),
		StartedAt:     entity.StartedAt(),
	}
}
