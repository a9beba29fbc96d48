// Package toolsync implements cross-device synchronization of tool results.
// Each tool (diary, bots, tests) stores its finished sessions as opaque JSON
// payloads; devices push local results and pull the merged server view.
package toolsync

import (
	"fmt"
	"strings"
	"time"
)

// ServerIDKey is the payload key carrying the server row ID back to clients.
// Keys with a leading underscore are client-side bookkeeping and are never
// persisted.
const ServerIDKey = "_server_id"

// Record is one synced tool result owned by a user.
type Record struct {
	id        uint
	userID    string
	toolType  string
	payload   map[string]any
	createdAt time.Time
}

// NewRecord creates a record from a client payload. Underscore-prefixed
// bookkeeping keys are stripped before storage.
func NewRecord(userID, toolType string, payload map[string]any) (*Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if toolType == "" {
		return nil, fmt.Errorf("tool type is required")
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("payload is required")
	}

	return &Record{
		userID:    userID,
		toolType:  toolType,
		payload:   StripClientKeys(payload),
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructRecord reconstructs a record from persistence.
func ReconstructRecord(id uint, userID, toolType string, payload map[string]any, createdAt time.Time) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("record ID cannot be zero")
	}
	if payload == nil {
		payload = make(map[string]any)
	}

	return &Record{
		id:        id,
		userID:    userID,
		toolType:  toolType,
		payload:   payload,
		createdAt: createdAt,
	}, nil
}

// ID returns the server row ID
func (r *Record) ID() uint {
	return r.id
}

// UserID returns the owning user identifier
func (r *Record) UserID() string {
	return r.userID
}

// ToolType returns the tool this result belongs to
func (r *Record) ToolType() string {
	return r.toolType
}

// Payload returns the stored result payload
func (r *Record) Payload() map[string]any {
	return r.payload
}

// CreatedAt returns when the record reached the server
func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

// SetID sets the row ID (only for persistence layer use)
func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("record ID cannot be zero")
	}
	r.id = id
	return nil
}

// PayloadWithServerID returns the payload with the server row ID injected,
// the shape clients receive on load and sync.
func (r *Record) PayloadWithServerID() map[string]any {
	out := make(map[string]any, len(r.payload)+1)
	for k, v := range r.payload {
		out[k] = v
	}
	out[ServerIDKey] = r.id
	return out
}

// StripClientKeys drops underscore-prefixed bookkeeping keys from a payload.
func StripClientKeys(payload map[string]any) map[string]any {
	clean := make(map[string]any, len(payload))
	for k, v := range payload {
		if strings.HasPrefix(k, "_") {
			continue
		}
		clean[k] = v
	}
	return clean
}
