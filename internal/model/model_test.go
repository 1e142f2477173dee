package model

import (
	"encoding/json"
	"testing"
)

func TestTaskID_UnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want TaskID
	}{
		{name: "integer", in: `{"id": 42, "text": "a", "completed": false}`, want: "42"},
		{name: "string", in: `{"id": "t-9", "text": "a", "completed": true}`, want: "t-9"},
		{name: "numeric string", in: `{"id": "7", "text": "a", "completed": true}`, want: "7"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var task Task
			if err := json.Unmarshal([]byte(tt.in), &task); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if task.ID != tt.want {
				t.Fatalf("expected id %q, got %q", tt.want, task.ID)
			}
		})
	}
}

func TestTaskID_UnmarshalRejectsNull(t *testing.T) {
	t.Parallel()

	var task Task
	if err := json.Unmarshal([]byte(`{"id": null, "text": "a"}`), &task); err == nil {
		t.Fatalf("expected error for null id")
	}
}

func TestTaskID_MarshalKeepsWireShape(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Task{ID: "12", Text: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"id":12,"text":"x","completed":false}`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	b, err = json.Marshal(Task{ID: "007", Text: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"id":"007","text":"x","completed":false}`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
