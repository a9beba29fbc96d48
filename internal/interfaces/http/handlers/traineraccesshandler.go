package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"podelam/internal/application/trainer/usecases"
	"podelam/internal/domain/trainer"
	"podelam/internal/shared/biztime"
	"podelam/internal/shared/logger"
)

// trainerAccessRequest is the single body shape for every trainer access
// action. Which fields matter depends on the action; the frontend owns this
// protocol and it predates this service.
type trainerAccessRequest struct {
	Action      string         `json:"action"`
	Email       string         `json:"email"`
	PlanID      string         `json:"plan_id"`
	TrainerID   string         `json:"trainer_id"`
	DeviceID    string         `json:"device_id"`
	SessionID   string         `json:"session_id"`
	StartedAt   string         `json:"started_at"`
	CompletedAt string         `json:"completed_at"`
	Scores      map[string]any `json:"scores"`
	Result      any            `json:"result"`
	Answers     map[string]any `json:"answers"`
}

// TrainerAccessHandler dispatches the action-based trainer access protocol.
// Responses are the raw JSON shapes the frontend already parses; there is
// deliberately no response envelope.
type TrainerAccessHandler struct {
	resolveUser     *usecases.ResolveUserUseCase
	getSubscription *usecases.GetSubscriptionUseCase
	activatePlan    *usecases.ActivatePlanUseCase
	getLimit        *usecases.GetLimitUseCase
	startSession    *usecases.StartSessionUseCase
	heartbeat       *usecases.HeartbeatUseCase
	endSession      *usecases.EndSessionUseCase
	checkDevice     *usecases.CheckDeviceUseCase
	saveSession     *usecases.SaveSessionUseCase
	listSessions    *usecases.ListSessionsUseCase
	sessionCount    *usecases.SessionCountUseCase
	logger          logger.Interface
}

func NewTrainerAccessHandler(
	resolveUser *usecases.ResolveUserUseCase,
	getSubscription *usecases.GetSubscriptionUseCase,
	activatePlan *usecases.ActivatePlanUseCase,
	getLimit *usecases.GetLimitUseCase,
	startSession *usecases.StartSessionUseCase,
	heartbeat *usecases.HeartbeatUseCase,
	endSession *usecases.EndSessionUseCase,
	checkDevice *usecases.CheckDeviceUseCase,
	saveSession *usecases.SaveSessionUseCase,
	listSessions *usecases.ListSessionsUseCase,
	sessionCount *usecases.SessionCountUseCase,
	logger logger.Interface,
) *TrainerAccessHandler {
	return &TrainerAccessHandler{
		resolveUser:     resolveUser,
		getSubscription: getSubscription,
		activatePlan:    activatePlan,
		getLimit:        getLimit,
		startSession:    startSession,
		heartbeat:       heartbeat,
		endSession:      endSession,
		checkDevice:     checkDevice,
		saveSession:     saveSession,
		listSessions:    listSessions,
		sessionCount:    sessionCount,
		logger:          logger,
	}
}

// Handle is the single POST entry point.
func (h *TrainerAccessHandler) Handle(c *gin.Context) {
	var req trainerAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.Set("action", req.Action)

	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}

	account, err := h.resolveUser.Execute(c.Request.Context(), usecases.ResolveUserQuery{Email: req.Email})
	if err != nil {
		h.respondError(c, err)
		return
	}
	userID := account.ID()

	switch req.Action {
	case "get_subscription":
		h.handleGetSubscription(c, userID)
	case "activate":
		h.handleActivate(c, userID, &req)
	case "get_limit":
		h.handleGetLimit(c, userID)
	case "session_start":
		h.handleSessionStart(c, userID, &req)
	case "heartbeat":
		h.handleHeartbeat(c, userID, &req)
	case "session_end":
		h.handleSessionEnd(c, userID, &req)
	case "check_device":
		h.handleCheckDevice(c, userID, &req)
	case "save_session":
		h.handleSaveSession(c, userID, &req)
	case "get_sessions":
		h.handleGetSessions(c, userID, &req)
	case "get_session_count":
		h.handleGetSessionCount(c, userID, &req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
	}
}

func (h *TrainerAccessHandler) handleGetSubscription(c *gin.Context, userID uint) {
	view, err := h.getSubscription.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{UserID: userID})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": view})
}

func (h *TrainerAccessHandler) handleActivate(c *gin.Context, userID uint, req *trainerAccessRequest) {
	view, err := h.activatePlan.Execute(c.Request.Context(), usecases.ActivatePlanCommand{
		UserID:    userID,
		PlanID:    req.PlanID,
		TrainerID: req.TrainerID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "subscription": view})
}

func (h *TrainerAccessHandler) handleGetLimit(c *gin.Context, userID uint) {
	limit, err := h.getLimit.Execute(c.Request.Context(), usecases.GetLimitQuery{UserID: userID})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, limit)
}

func (h *TrainerAccessHandler) handleSessionStart(c *gin.Context, userID uint, req *trainerAccessRequest) {
	if req.TrainerID == "" || req.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trainer_id and device_id required"})
		return
	}

	err := h.startSession.Execute(c.Request.Context(), usecases.StartSessionCommand{
		UserID:    userID,
		TrainerID: req.TrainerID,
		DeviceID:  req.DeviceID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *TrainerAccessHandler) handleHeartbeat(c *gin.Context, userID uint, req *trainerAccessRequest) {
	if req.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}

	err := h.heartbeat.Execute(c.Request.Context(), usecases.HeartbeatCommand{
		UserID:   userID,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *TrainerAccessHandler) handleSessionEnd(c *gin.Context, userID uint, req *trainerAccessRequest) {
	err := h.endSession.Execute(c.Request.Context(), usecases.EndSessionCommand{
		UserID:   userID,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *TrainerAccessHandler) handleCheckDevice(c *gin.Context, userID uint, req *trainerAccessRequest) {
	if req.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}

	status, err := h.checkDevice.Execute(c.Request.Context(), usecases.CheckDeviceQuery{
		UserID:   userID,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *TrainerAccessHandler) handleSaveSession(c *gin.Context, userID uint, req *trainerAccessRequest) {
	if req.TrainerID == "" || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trainer_id and session_id required"})
		return
	}

	startedAt, ok := parseOptionalTime(req.StartedAt)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid started_at"})
		return
	}
	completedAt, ok := parseOptionalTime(req.CompletedAt)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed_at"})
		return
	}

	result, err := h.saveSession.Execute(c.Request.Context(), usecases.SaveSessionCommand{
		UserID:      userID,
		TrainerID:   req.TrainerID,
		SessionID:   req.SessionID,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		Scores:      req.Scores,
		Result:      req.Result,
		Answers:     req.Answers,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"sessions_used":  result.SessionsUsed,
		"sessions_total": result.SessionsTotal,
	})
}

func (h *TrainerAccessHandler) handleGetSessions(c *gin.Context, userID uint, req *trainerAccessRequest) {
	sessions, err := h.listSessions.Execute(c.Request.Context(), usecases.ListSessionsQuery{
		UserID:    userID,
		TrainerID: req.TrainerID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *TrainerAccessHandler) handleGetSessionCount(c *gin.Context, userID uint, req *trainerAccessRequest) {
	if req.TrainerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trainer_id required"})
		return
	}

	count, err := h.sessionCount.Execute(c.Request.Context(), usecases.SessionCountQuery{
		UserID:    userID,
		TrainerID: req.TrainerID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, count)
}

// respondError maps domain failures to the frontend's error codes. Anything
// unrecognized is an infrastructure fault and surfaces as a plain 500.
func (h *TrainerAccessHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trainer.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, trainer.ErrInvalidPlan):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan"})
	case errors.Is(err, trainer.ErrNoSubscription):
		c.JSON(http.StatusForbidden, gin.H{"error": "no_subscription"})
	default:
		var limitErr *trainer.SessionLimitReachedError
		if errors.As(err, &limitErr) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "session_limit_reached",
				"used":  limitErr.Used,
				"total": limitErr.Total,
			})
			return
		}

		var activeErr *trainer.SessionActiveError
		if errors.As(err, &activeErr) {
			body := gin.H{
				"error":      "session_active_other_device",
				"trainer_id": activeErr.TrainerID,
			}
			if !activeErr.LastHeartbeat.IsZero() {
				body["last_heartbeat"] = activeErr.LastHeartbeat.UTC().Format(time.RFC3339)
			}
			c.JSON(http.StatusConflict, body)
			return
		}

		h.logger.Errorw("trainer access request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseOptionalTime parses a client timestamp. Empty means absent; an
// unparseable value is the caller's mistake, not ours.
func parseOptionalTime(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}

	t, err := biztime.ParseClientTime(value)
	if err != nil {
		return nil, false
	}
	return &t, true
}
