// Package analytics derives productivity metrics from a snapshot of tasks.
// Everything is recomputed on every call; there is no cache to invalidate.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Joseda-hg/nexatask/internal/model"
)

type Report struct {
	TotalTasks         int            `json:"total_tasks"`
	CompletedTasks     int            `json:"completed_tasks"`
	PendingTasks       int            `json:"pending_tasks"`
	CompletionRate     float64        `json:"completion_rate"`
	TasksByCategory    map[string]int `json:"tasks_by_category"`
	TasksByPriority    map[int64]int  `json:"tasks_by_priority"`
	DailyCompletions   map[string]int `json:"daily_completions"`
	ProductivityStreak int            `json:"productivity_streak"`
}

// ZeroReport is the all-zero shape the API degrades to when the task list
// cannot be read. Maps are non-nil so they serialize as {} rather than null.
func ZeroReport() Report {
	return Report{
		TasksByCategory:  map[string]int{},
		TasksByPriority:  map[int64]int{},
		DailyCompletions: map[string]int{},
	}
}

func Compute(tasks []model.Task, now time.Time) Report {
	report := ZeroReport()
	report.TotalTasks = len(tasks)

	weekAgo := now.AddDate(0, 0, -7)
	completions := make([]time.Time, 0, len(tasks))

	for _, task := range tasks {
		report.TasksByCategory[task.Category]++
		report.TasksByPriority[task.Priority]++

		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		report.CompletedTasks++
		completions = append(completions, *task.CompletedAt)

		if !task.CompletedAt.Before(weekAgo) {
			report.DailyCompletions[task.CompletedAt.Format("2006-01-02")]++
		}
	}

	report.PendingTasks = report.TotalTasks - report.CompletedTasks
	if report.TotalTasks > 0 {
		rate := float64(report.CompletedTasks) / float64(report.TotalTasks) * 100
		report.CompletionRate = math.Round(rate*10) / 10
	}

	sort.Slice(completions, func(i, j int) bool {
		return completions[i].After(completions[j])
	})
	report.ProductivityStreak = streak(completions, now)

	return report
}

// streak walks completion timestamps newest-first and counts while each
// calendar date either matches the current anchor or falls exactly
// streak-so-far days before it. Timestamps are not deduplicated by date, so
// two completions on the same day both count; that quirk is kept as the
// shipped behavior and pinned down by tests.
func streak(completions []time.Time, now time.Time) int {
	count := 0
	current := dateOf(now)

	for _, ts := range completions {
		d := dateOf(ts)
		if d.Equal(current) || d.Equal(current.AddDate(0, 0, -count)) {
			count++
			current = d
		} else {
			break
		}
	}

	return count
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
