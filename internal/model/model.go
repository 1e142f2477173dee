package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TaskID is the server-assigned identifier of a task.
//
// The Task Store hands out integers today, but the client treats ids as opaque text so a
// store that switches to string ids keeps working.
type TaskID string

func (id TaskID) String() string { return string(id) }

func (id TaskID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// MarshalJSON writes all-digit ids as JSON numbers (the wire shape the store uses) and
// everything else as JSON strings.
func (id TaskID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if isDigits(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id *TaskID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("task id: missing value")
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("task id: %w", err)
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

func isDigits(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

type Task struct {
	ID        TaskID `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// CreateTaskRequest is the body of a create call.
type CreateTaskRequest struct {
	Text string `json:"text"`
}
