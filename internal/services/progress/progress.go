// Package progress derives a project's completion percentage from its task
// list. It is pure and stateless: the store invokes it after every task-list
// mutation so the derived field is always recomputed from the full list,
// never incrementally adjusted.
package progress

import (
	"math"

	"portfoliodesk/internal/models"
)

// Completion returns the rounded mean of task progress (half-up), or 0 for
// an empty list.
func Completion(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
	}
	return int(math.Floor(float64(sum)/float64(len(tasks)) + 0.5))
}

// StatusFor maps a progress value to the task status the editing flow keeps
// it consistent with: 100 means done, 0 means todo, anything between is
// in_progress. Direct partial updates do not force this mapping.
func StatusFor(progress int) models.TaskStatus {
	switch {
	case progress >= 100:
		return models.TaskDone
	case progress <= 0:
		return models.TaskTodo
	default:
		return models.TaskInProgress
	}
}

// WithProgress returns a copy of the task with progress and status updated
// together, keeping the two consistent within the joint editing flow.
func WithProgress(t models.Task, progress int) models.Task {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	cp := t.Clone()
	cp.Progress = progress
	cp.Status = StatusFor(progress)
	return cp
}
