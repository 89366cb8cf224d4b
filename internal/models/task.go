package models

import "time"

// TaskStatus is the kanban column a task sits in
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Task is owned exclusively by its parent project. It has no independent
// lifecycle: tasks are created, reordered, updated and deleted only through
// the parent project's task-mutation operations.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	Assignees []string   `json:"assignees,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Progress  int        `json:"progress"`
	Comments  []string   `json:"comments,omitempty"`
	Position  int        `json:"position"`
}

// Clone returns a deep copy of the task
func (t Task) Clone() Task {
	cp := t
	cp.StartDate = cloneTime(t.StartDate)
	cp.EndDate = cloneTime(t.EndDate)
	if t.Assignees != nil {
		cp.Assignees = append([]string(nil), t.Assignees...)
	}
	if t.Comments != nil {
		cp.Comments = append([]string(nil), t.Comments...)
	}
	return cp
}
