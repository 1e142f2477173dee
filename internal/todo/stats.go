package todo

import "fmt"

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

func (c *Client) Stats() Stats {
	s := Stats{Total: len(c.tasks)}
	for _, t := range c.tasks {
		if t.Completed {
			s.Completed++
		}
	}
	return s
}

func (s Stats) TotalLabel() string {
	if s.Total == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", s.Total)
}

func (s Stats) CompletedLabel() string {
	return fmt.Sprintf("%d completed", s.Completed)
}
