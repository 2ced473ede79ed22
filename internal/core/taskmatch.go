package core

import (
	"strings"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// TaskMatcher picks the task a natural-language query refers to.
type TaskMatcher interface {
	Match(tasks []models.Task, query string) (models.Task, bool)
}

// FuzzyMatcher prefers a case-insensitive exact match on the trimmed
// description and falls back to a case-insensitive substring match. Ties go
// to the first task in document order.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Match(tasks []models.Task, query string) (models.Task, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.Task{}, false
	}
	for _, t := range tasks {
		if strings.ToLower(strings.TrimSpace(t.Description)) == q {
			return t, true
		}
	}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Description), q) {
			return t, true
		}
	}
	return models.Task{}, false
}
