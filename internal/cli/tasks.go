package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/todo"

	"github.com/spf13/cobra"
)

// settle runs req and settles its result. Deferred follow-ups (the removal delay) are settled right
// away: there are no rows to animate outside the TUI.
func settle(ctx context.Context, c *todo.Client, req todo.Request) todo.Outcome {
	out := c.Settle(req(ctx))
	for d := out.After; d != nil; {
		d = c.Settle(d.Result).After
	}
	return out
}

func failure(out todo.Outcome) error {
	if out.Notice != nil && out.Notice.Kind == todo.KindError {
		return noticeError{notice: *out.Notice}
	}
	return nil
}

func noticeMessage(out todo.Outcome) string {
	if out.Notice == nil {
		return ""
	}
	return out.Notice.Message
}

// loadedClient returns a client holding the store's current list.
func loadedClient(cmd *cobra.Command, app *App) (*todo.Client, error) {
	c, _, err := app.newTodoClient()
	if err != nil {
		return nil, err
	}
	if err := failure(settle(cmd.Context(), c, c.Load())); err != nil {
		return nil, err
	}
	return c, nil
}

func newListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadedClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks := c.Tasks()
			switch status {
			case "", "all":
			case "open":
				tasks = filterTasks(tasks, false)
			case "completed":
				tasks = filterTasks(tasks, true)
			default:
				return writeErr(cmd, fmt.Errorf("invalid --status %q (want all, open or completed)", status))
			}
			return writeOut(cmd, app, envelope{Data: taskListView{Tasks: tasks, Stats: c.Stats()}})
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "Filter by status (all|open|completed)")
	return cmd
}

func filterTasks(tasks []model.Task, completed bool) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := app.newTodoClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			req, err := c.Create(strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, noticeError{notice: todo.ValidationNotice(err)})
			}
			out := settle(cmd.Context(), c, req)
			if err := failure(out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: taskView{Task: c.Tasks()[0], Message: noticeMessage(out)}})
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadedClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := model.TaskID(strings.TrimSpace(args[0]))
			req := c.Toggle(id)
			if req == nil {
				return writeErr(cmd, errNotFound("task", id.String()))
			}
			out := settle(cmd.Context(), c, req)
			if err := failure(out); err != nil {
				return writeErr(cmd, err)
			}
			t, _ := c.Find(id)
			return writeOut(cmd, app, envelope{Data: taskView{Task: t, Message: noticeMessage(out)}})
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadedClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := model.TaskID(strings.TrimSpace(args[0]))
			if _, ok := c.Find(id); !ok {
				return writeErr(cmd, errNotFound("task", id.String()))
			}
			if c.NeedsConfirm(id) && !yes {
				return writeErr(cmd, confirmRequiredError{
					id:     id.String(),
					reason: fmt.Sprintf("task text is longer than %d characters", todo.ConfirmTextLen),
				})
			}
			out := settle(cmd.Context(), c, c.Remove(id))
			if err := failure(out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: removedView{ID: id, Message: noticeMessage(out)}})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking, even for long tasks")
	return cmd
}

func newClearCompletedCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadedClient(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			done := c.Completed()
			if len(done) > 0 && !yes {
				return writeErr(cmd, confirmRequiredError{
					id:     "completed tasks",
					reason: fmt.Sprintf("would delete %d tasks", len(done)),
				})
			}

			view := clearedView{Deleted: []model.TaskID{}}
			for _, t := range done {
				req := c.Remove(t.ID)
				if req == nil {
					continue
				}
				if err := failure(settle(cmd.Context(), c, req)); err != nil {
					view.Failed = append(view.Failed, clearFailure{ID: t.ID, Error: err.Error()})
					continue
				}
				view.Deleted = append(view.Deleted, t.ID)
			}
			if err := writeOut(cmd, app, envelope{Data: view}); err != nil {
				return err
			}
			if len(view.Failed) > 0 {
				return writeErr(cmd, fmt.Errorf("%d of %d deletes failed", len(view.Failed), len(done)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the bulk delete")
	return cmd
}
