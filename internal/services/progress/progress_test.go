package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfoliodesk/internal/models"
)

func TestCompletion(t *testing.T) {
	t.Run("Should return 0 for empty task list", func(t *testing.T) {
		assert.Equal(t, 0, Completion(nil))
		assert.Equal(t, 0, Completion([]models.Task{}))
	})

	t.Run("Should compute rounded mean of task progress", func(t *testing.T) {
		tests := []struct {
			name     string
			progress []int
			expected int
		}{
			{"single task", []int{40}, 40},
			{"two equal tasks", []int{80, 80}, 80},
			{"all complete", []int{100, 100, 100}, 100},
			{"all zero", []int{0, 0}, 0},
			{"rounds half up", []int{33, 34}, 34},   // 33.5 -> 34
			{"rounds down below half", []int{33, 33, 34}, 33}, // 33.33 -> 33
			{"rounds up above half", []int{66, 67, 67}, 67},   // 66.67 -> 67
			{"uneven split", []int{100, 0, 0}, 33},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tasks := make([]models.Task, len(tt.progress))
				for i, p := range tt.progress {
					tasks[i] = models.Task{Progress: p}
				}
				assert.Equal(t, tt.expected, Completion(tasks))
			})
		}
	})
}

func TestStatusFor(t *testing.T) {
	t.Run("Should map progress to consistent status", func(t *testing.T) {
		assert.Equal(t, models.TaskTodo, StatusFor(0))
		assert.Equal(t, models.TaskInProgress, StatusFor(1))
		assert.Equal(t, models.TaskInProgress, StatusFor(50))
		assert.Equal(t, models.TaskInProgress, StatusFor(99))
		assert.Equal(t, models.TaskDone, StatusFor(100))
	})
}

func TestWithProgress(t *testing.T) {
	t.Run("Should update progress and status together", func(t *testing.T) {
		task := models.Task{ID: "t1", Title: "Wire up API", Status: models.TaskTodo, Progress: 0}

		updated := WithProgress(task, 60)
		assert.Equal(t, 60, updated.Progress)
		assert.Equal(t, models.TaskInProgress, updated.Status)

		done := WithProgress(updated, 100)
		assert.Equal(t, models.TaskDone, done.Status)

		reset := WithProgress(done, 0)
		assert.Equal(t, models.TaskTodo, reset.Status)
	})

	t.Run("Should clamp out-of-range progress", func(t *testing.T) {
		task := models.Task{ID: "t1"}
		assert.Equal(t, 100, WithProgress(task, 150).Progress)
		assert.Equal(t, 0, WithProgress(task, -5).Progress)
	})

	t.Run("Should not mutate the original task", func(t *testing.T) {
		task := models.Task{ID: "t1", Progress: 10, Status: models.TaskInProgress}
		_ = WithProgress(task, 100)
		assert.Equal(t, 10, task.Progress)
		assert.Equal(t, models.TaskInProgress, task.Status)
	})
}
