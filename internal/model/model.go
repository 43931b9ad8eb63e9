package model

import "time"

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    int64      `json:"priority"`
	Completed   bool       `json:"completed"`
	DueDate     *string    `json:"due_date"`
	Tags        []string   `json:"tags"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Preferences struct {
	Theme              string `json:"theme"`
	PrimaryColor       string `json:"primary_color"`
	ViewMode           string `json:"view_mode"`
	AnimationIntensity string `json:"animation_intensity"`
	FirstVisit         bool   `json:"first_visit"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:              "light",
		PrimaryColor:       "#667eea",
		ViewMode:           "list",
		AnimationIntensity: "normal",
		FirstVisit:         true,
	}
}

// CompletionPatch flips a task's completed state and its timestamp, leaving
// every other field alone.
type CompletionPatch struct {
	Completed bool
}

// FieldPatch replaces all six descriptive fields of a task at once. It does
// not merge: a zero-value field overwrites the stored one. Completion state
// is untouched.
type FieldPatch struct {
	Title       string
	Description string
	Category    string
	Priority    int64
	DueDate     *string
	Tags        []string
}
