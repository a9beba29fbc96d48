package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"podelam/internal/domain/trainer"
	"podelam/internal/infrastructure/persistence/models"
)

type SessionMapper interface {
	ToEntity(model *models.SessionModel) (*trainer.Session, error)
	ToModel(entity *trainer.Session) (*models.SessionModel, error)
	ToEntities(models []*models.SessionModel) ([]*trainer.Session, error)
}

type SessionMapperImpl struct{}

func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

func (m *SessionMapperImpl) ToEntity(model *models.SessionModel) (*trainer.Session, error) {
	if model == nil {
		return nil, nil
	}

	var scores map[string]any
	if model.Scores != nil {
		if err := json.Unmarshal(model.Scores, &scores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
		}
	}

	var answers map[string]any
	if model.Answers != nil {
		if err := json.Unmarshal(model.Answers, &answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
	}

	var result any
	if model.Result != nil {
		if err := json.Unmarshal(model.Result, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}

	entity, err := trainer.ReconstructSession(
		model.ID,
		model.UserID,
		model.TrainerID,
		model.SessionID,
		model.StartedAt,
		model.CompletedAt,
		scores,
		result,
		answers,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct session entity: %w", err)
	}

	return entity, nil
}

func (m *SessionMapperImpl) ToModel(entity *trainer.Session) (*models.SessionModel, error) {
	if entity == nil {
		return nil, nil
	}

	scores, err := json.Marshal(entity.Scores())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scores: %w", err)
	}

	answers, err := json.Marshal(entity.Answers())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	var result datatypes.JSON
	if entity.Result() != nil {
		raw, err := json.Marshal(entity.Result())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		result = raw
	}

	return &models.SessionModel{
		ID:          entity.ID(),
		UserID:      entity.UserID(),
		SessionID:   entity.SessionID(),
		TrainerID:   entity.TrainerID(),
		StartedAt:   entity.StartedAt(),
		CompletedAt: entity.CompletedAt(),
		Scores:      scores,
		Result:      result,
		Answers:     answers,
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *SessionMapperImpl) ToEntities(sessionModels []*models.SessionModel) ([]*trainer.Session, error) {
	entities := make([]*trainer.Session, 0, len(sessionModels))
	for _, model := range sessionModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
