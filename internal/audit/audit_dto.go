package audit

import (
	"encoding/json"
	"time"
)

type EntryResponse struct {
	ID          string          `json:"id"`
	Action      string          `json:"action"`
	EmployeeID  string          `json:"employee_id"`
	PerformedBy string          `json:"performed_by"`
	Details     json.RawMessage `json:"details"`
	Timestamp   time.Time       `json:"timestamp"`
}

func mapToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID.String(),
		Action:      e.Action,
		EmployeeID:  e.EmployeeID,
		PerformedBy: e.PerformedBy,
		Details:     json.RawMessage(e.Details),
		Timestamp:   e.Timestamp,
	}
}

func mapToListResponse(entries []Entry) []EntryResponse {
	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
