package cli

import (
	"fmt"
	"io"

	"todo-cli/internal/format"
	"todo-cli/internal/model"
	"todo-cli/internal/todo"
)

// envelope is the JSON shape of every command: {"data": ...}. With --format text the payload
// renders itself.
type envelope struct {
	Data any `json:"data"`
}

func (e envelope) WriteText(w io.Writer) error {
	if t, ok := e.Data.(format.Texter); ok {
		return t.WriteText(w)
	}
	return format.WriteJSON(w, e.Data, true)
}

func taskCells(t model.Task) []string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	return []string{t.ID.String(), box, format.Sanitize(t.Text)}
}

type taskListView struct {
	Tasks []model.Task `json:"tasks"`
	Stats todo.Stats   `json:"stats"`
}

func (v taskListView) WriteText(w io.Writer) error {
	if len(v.Tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet.")
		return err
	}
	rows := make([][]string, 0, len(v.Tasks))
	for _, t := range v.Tasks {
		rows = append(rows, taskCells(t))
	}
	if err := format.WriteTable(w, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s · %s\n", v.Stats.TotalLabel(), v.Stats.CompletedLabel())
	return err
}

type taskView struct {
	Task    model.Task `json:"task"`
	Message string     `json:"message"`
}

func (v taskView) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, v.Message); err != nil {
		return err
	}
	return format.WriteTable(w, [][]string{taskCells(v.Task)})
}

type removedView struct {
	ID      model.TaskID `json:"id"`
	Message string       `json:"message"`
}

func (v removedView) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s (%s)\n", v.Message, v.ID)
	return err
}

type clearFailure struct {
	ID    model.TaskID `json:"id"`
	Error string       `json:"error"`
}

type clearedView struct {
	Deleted []model.TaskID `json:"deleted"`
	Failed  []clearFailure `json:"failed,omitempty"`
}

func (v clearedView) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Deleted %d completed tasks.\n", len(v.Deleted)); err != nil {
		return err
	}
	for _, f := range v.Failed {
		if _, err := fmt.Fprintf(w, "failed %s: %s\n", f.ID, f.Error); err != nil {
			return err
		}
	}
	return nil
}
