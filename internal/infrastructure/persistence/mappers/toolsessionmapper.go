package mappers

import (
	"encoding/json"
	"fmt"

	"podelam/internal/domain/toolsync"
	"podelam/internal/infrastructure/persistence/models"
)

type ToolSessionMapper interface {
	ToEntity(model *models.ToolSessionModel) (*toolsync.Record, error)
	ToModel(entity *toolsync.Record) (*models.ToolSessionModel, error)
	ToEntities(models []*models.ToolSessionModel) ([]*toolsync.Record, error)
}

type ToolSessionMapperImpl struct{}

func NewToolSessionMapper() ToolSessionMapper {
	return &ToolSessionMapperImpl{}
}

func (m *ToolSessionMapperImpl) ToEntity(model *models.ToolSessionModel) (*toolsync.Record, error) {
	if model == nil {
		return nil, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(model.SessionData, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	entity, err := toolsync.ReconstructRecord(model.ID, model.UserID, model.ToolType, payload, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct tool session record: %w", err)
	}

	return entity, nil
}

func (m *ToolSessionMapperImpl) ToModel(entity *toolsync.Record) (*models.ToolSessionModel, error) {
	if entity == nil {
		return nil, nil
	}

	data, err := json.Marshal(entity.Payload())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session data: %w", err)
	}

	return &models.ToolSessionModel{
		ID:          entity.ID(),
		UserID:      entity.UserID(),
		ToolType:    entity.ToolType(),
		SessionData: data,
		CreatedAt:   entity.CreatedAt(),
	}, nil
}

func (m *ToolSessionMapperImpl) ToEntities(toolModels []*models.ToolSessionModel) ([]*toolsync.Record, error) {
	entities := make([]*toolsync.Record, 0, len(toolModels))
	for _, model := range toolModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
