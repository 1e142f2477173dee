package todo

import (
	"todo-cli/internal/model"
)

type loadResult struct {
	tasks []model.Task
	err   error
}

func (r loadResult) settle(c *Client) Outcome {
	if r.err != nil {
		// Keep whatever is on screen; re-rendering here would flash stale rows.
		return Outcome{Notice: errorNotice("Failed to load tasks. Press r to reload.", r.err)}
	}
	c.replaceAll(r.tasks)
	return Outcome{Render: true}
}

type createResult struct {
	task model.Task
	err  error
}

func (r createResult) settle(c *Client) Outcome {
	c.creating = false
	if r.err != nil {
		return Outcome{
			Notice:     errorNotice("Failed to add task. Please try again.", r.err),
			FocusInput: true,
		}
	}
	c.prepend(r.task)
	return Outcome{
		Notice:     successNotice("Task added successfully!"),
		Render:     true,
		ResetInput: true,
		FocusInput: true,
	}
}

type toggleResult struct {
	id   model.TaskID
	task model.Task
	err  error
}

func (r toggleResult) settle(c *Client) Outcome {
	if r.err != nil {
		return Outcome{Notice: errorNotice("Failed to update task. Please try again.", r.err)}
	}
	i := c.indexOf(r.id)
	if i < 0 {
		// Removed while the toggle was in flight: the later settlement already won.
		return Outcome{}
	}
	next := make([]model.Task, len(c.tasks))
	copy(next, c.tasks)
	next[i] = r.task
	c.tasks = next

	status := "unmarked"
	if r.task.Completed {
		status = "completed"
	}
	return Outcome{
		Notice: successNotice("Task " + status + "!"),
		Render: true,
	}
}

type removeResult struct {
	id  model.TaskID
	err error
}

func (r removeResult) settle(c *Client) Outcome {
	if r.err != nil {
		return Outcome{Notice: errorNotice("Failed to delete task. Please try again.", r.err)}
	}
	out := Outcome{Notice: successNotice("Task deleted!")}
	if c.indexOf(r.id) < 0 {
		return out
	}
	c.removing[r.id] = true
	out.Render = true
	out.After = &Deferred{Delay: RemoveDelay, Result: removalDue{id: r.id}}
	return out
}

// removalDue fires RemoveDelay after a confirmed delete.
type removalDue struct {
	id model.TaskID
}

func (r removalDue) settle(c *Client) Outcome {
	if c.indexOf(r.id) < 0 && !c.removing[r.id] {
		return Outcome{}
	}
	c.drop(r.id)
	return Outcome{Render: true}
}
