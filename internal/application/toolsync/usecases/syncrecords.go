package usecases

import (
	"context"
	"fmt"

	"podelam/internal/domain/toolsync"
	"podelam/internal/shared/config"
	"podelam/internal/shared/db"
	"podelam/internal/shared/logger"
)

type SyncRecordsCommand struct {
	UserID   string
	ToolType string
	Sessions []map[string]any
}

type SyncRecordsResult struct {
	Sessions []map[string]any
	Synced   int
}

// SyncRecordsUseCase merges client-held results into the store. A client
// row is skipped when its server id is already known or when its content
// fingerprint matches an existing row; everything else is inserted with the
// client-side underscore keys stripped. The merged list is then trimmed to
// the tool's retention cap, newest kept, and returned.
type SyncRecordsUseCase struct {
	recordRepo toolsync.Repository
	txManager  *db.TransactionManager
	syncCfg    *config.SyncConfig
	logger     logger.Interface
}

func NewSyncRecordsUseCase(
	recordRepo toolsync.Repository,
	txManager *db.TransactionManager,
	syncCfg *config.SyncConfig,
	logger logger.Interface,
) *SyncRecordsUseCase {
	return &SyncRecordsUseCase{
		recordRepo: recordRepo,
		txManager:  txManager,
		syncCfg:    syncCfg,
		logger:     logger,
	}
}

func (uc *SyncRecordsUseCase) Execute(ctx context.Context, cmd SyncRecordsCommand) (*SyncRecordsResult, error) {
	var result *SyncRecordsResult

	// One transaction around the whole merge, so a failed insert or prune
	// leaves the store as it was.
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = uc.merge(ctx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *SyncRecordsUseCase) merge(ctx context.Context, cmd SyncRecordsCommand) (*SyncRecordsResult, error) {
	records, err := uc.recordRepo.ListByUserAndTool(ctx, cmd.UserID, cmd.ToolType)
	if err != nil {
		uc.logger.Errorw("failed to load tool sessions for sync", "tool_type", cmd.ToolType, "error", err)
		return nil, fmt.Errorf("failed to load tool sessions: %w", err)
	}

	serverIDs := make(map[uint]bool, len(records))
	serverFingerprints := make(map[string]bool, len(records))
	merged := make([]map[string]any, 0, len(records)+len(cmd.Sessions))
	for _, record := range records {
		serverIDs[record.ID()] = true
		serverFingerprints[toolsync.Fingerprint(record.Payload())] = true
		merged = append(merged, record.PayloadWithServerID())
	}

	synced := 0
	for _, session := range cmd.Sessions {
		if id, ok := serverID(session); ok && serverIDs[id] {
			continue
		}

		clean := toolsync.StripClientKeys(session)
		if serverFingerprints[toolsync.Fingerprint(clean)] {
			continue
		}

		record, err := toolsync.NewRecord(cmd.UserID, cmd.ToolType, clean)
		if err != nil {
			return nil, fmt.Errorf("failed to build tool session record: %w", err)
		}
		if err := uc.recordRepo.Insert(ctx, record); err != nil {
			uc.logger.Errorw("failed to insert synced tool session", "tool_type", cmd.ToolType, "error", err)
			return nil, fmt.Errorf("failed to insert tool session: %w", err)
		}

		merged = append(merged, record.PayloadWithServerID())
		synced++
	}

	keep := uc.syncCfg.KeepFor(cmd.ToolType)
	if keep > 0 && len(merged) > keep {
		toRemove := merged[:len(merged)-keep]
		removeIDs := make([]uint, 0, len(toRemove))
		for _, session := range toRemove {
			if id, ok := serverID(session); ok {
				removeIDs = append(removeIDs, id)
			}
		}
		if err := uc.recordRepo.DeleteByIDs(ctx, removeIDs); err != nil {
			uc.logger.Errorw("failed to prune merged tool sessions", "tool_type", cmd.ToolType, "error", err)
			return nil, fmt.Errorf("failed to prune tool sessions: %w", err)
		}
		merged = merged[len(merged)-keep:]
	}

	if synced > 0 {
		uc.logger.Infow("tool sessions synced",
			"tool_type", cmd.ToolType,
			"synced", synced)
	}

	return &SyncRecordsResult{Sessions: merged, Synced: synced}, nil
}

// serverID extracts the numeric server id from a client payload, tolerating
// the float64 that JSON decoding produces.
func serverID(session map[string]any) (uint, bool) {
	switch v := session[toolsync.ServerIDKey].(type) {
	case float64:
		if v > 0 {
			return uint(v), true
		}
	case int:
		if v > 0 {
			return uint(v), true
		}
	case uint:
		if v > 0 {
			return v, true
		}
	}
	return 0, false
}
