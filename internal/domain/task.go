package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for createdAt and updatedAt.
// It always renders a numeric offset, never "Z".
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// Field limits, counted in characters after trimming.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

// Task is a single TODO item. Field order matches the persisted layout.
//
// A task decoded from storage remembers the members of its stored object when
// they differ from that layout (unknown keys, loosely typed values, another
// key order) and writes them back unchanged unless a field is updated.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`

	members []member
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// NewTask builds a task from validated create input. New tasks always start
// with completed=false regardless of what the input carried.
func NewTask(id int64, in TaskInput, now time.Time) Task {
	task := Task{
		ID:        id,
		Title:     in.Title.Trimmed(),
		Completed: false,
		CreatedAt: FormatTimestamp(now),
	}
	if in.Description.Present {
		task.Description = in.Description.Trimmed()
	}
	return task
}

// Apply copies the present fields of validated update input onto the task and
// stamps UpdatedAt. A blank title is ignored; a blank description overwrites.
func (t *Task) Apply(in TaskInput, now time.Time) error {
	var completed bool
	if in.Completed.Present {
		var err error
		if completed, err = ParseCompleted(in.Completed.Raw); err != nil {
			return fmt.Errorf("apply update to task %d: %w", t.ID, err)
		}
	}

	// copies of a task share members until one of them is updated
	t.members = append([]member(nil), t.members...)

	if in.Title.Present && in.Title.Trimmed() != "" {
		t.Title = in.Title.Trimmed()
		t.touch(keyTitle)
	}

	if in.Description.Present {
		t.Description = in.Description.Trimmed()
		t.touch(keyDescription)
	}

	if in.Completed.Present {
		t.Completed = completed
		t.touch(keyCompleted)
	}

	t.UpdatedAt = FormatTimestamp(now)
	t.touch(keyUpdatedAt)
	return nil
}
