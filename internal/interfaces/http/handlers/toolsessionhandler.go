package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"podelam/internal/application/toolsync/usecases"
	"podelam/internal/shared/logger"
)

type toolSessionRequest struct {
	Action      string           `json:"action" binding:"required"`
	UserID      string           `json:"userId"`
	ToolType    string           `json:"toolType"`
	SessionData map[string]any   `json:"sessionData"`
	Sessions    []map[string]any `json:"sessions"`
}

// ToolSessionHandler serves the self-help tool sync protocol. Field naming
// is camelCase here, unlike the trainer endpoint; the tools shipped first
// and their payloads are frozen.
type ToolSessionHandler struct {
	loadRecords *usecases.LoadRecordsUseCase
	saveRecord  *usecases.SaveRecordUseCase
	syncRecords *usecases.SyncRecordsUseCase
	logger      logger.Interface
}

func NewToolSessionHandler(
	loadRecords *usecases.LoadRecordsUseCase,
	saveRecord *usecases.SaveRecordUseCase,
	syncRecords *usecases.SyncRecordsUseCase,
	logger logger.Interface,
) *ToolSessionHandler {
	return &ToolSessionHandler{
		loadRecords: loadRecords,
		saveRecord:  saveRecord,
		syncRecords: syncRecords,
		logger:      logger,
	}
}

// Handle is the single POST entry point.
func (h *ToolSessionHandler) Handle(c *gin.Context) {
	var req toolSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.Set("action", req.Action)

	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}
	if req.ToolType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toolType required"})
		return
	}

	switch req.Action {
	case "load":
		h.handleLoad(c, &req)
	case "save":
		h.handleSave(c, &req)
	case "sync":
		h.handleSync(c, &req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
	}
}

func (h *ToolSessionHandler) handleLoad(c *gin.Context, req *toolSessionRequest) {
	sessions, err := h.loadRecords.Execute(c.Request.Context(), usecases.LoadRecordsQuery{
		UserID:   req.UserID,
		ToolType: req.ToolType,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *ToolSessionHandler) handleSave(c *gin.Context, req *toolSessionRequest) {
	// An explicit {} is as useless as a missing field, reject both.
	if len(req.SessionData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionData required"})
		return
	}

	result, err := h.saveRecord.Execute(c.Request.Context(), usecases.SaveRecordCommand{
		UserID:   req.UserID,
		ToolType: req.ToolType,
		Payload:  req.SessionData,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": result.ID})
}

func (h *ToolSessionHandler) handleSync(c *gin.Context, req *toolSessionRequest) {
	result, err := h.syncRecords.Execute(c.Request.Context(), usecases.SyncRecordsCommand{
		UserID:   req.UserID,
		ToolType: req.ToolType,
		Sessions: req.Sessions,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": result.Sessions, "synced": result.Synced})
}

func (h *ToolSessionHandler) respondError(c *gin.Context, err error) {
	h.logger.Errorw("tool session request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
