package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

var entryTimePrefixPattern = regexp.MustCompile(`^\d{2}:\d{2} - `)

// CleanEntryText strips one leading bullet marker and one leading
// "HH:MM - " timestamp so that echoed entries are not decorated twice.
func CleanEntryText(text string) string {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "- "); ok {
		text = rest
	} else if rest, ok := strings.CutPrefix(text, "-"); ok {
		text = rest
	}
	return entryTimePrefixPattern.ReplaceAllString(text, "")
}

// insertEntry places entry under heading. An existing section receives the
// entry as the last line of its body, set off by a blank line when the body
// ends in a paragraph. A missing section is created before the first day
// section with a later day number, or at the end.
func insertEntry(lines []string, heading string, day int, entry string) []string {
	if sec, ok := FindHeading(lines, heading); ok {
		prev := lines[sec.End-1]
		if sec.End-1 > sec.Start && !isBlank(prev) && !listItemPattern.MatchString(prev) {
			return insertLines(lines, sec.End, "", entry)
		}
		return insertLines(lines, sec.End, entry)
	}

	at := len(lines)
	for _, ds := range DaySections(lines) {
		if ds.Day > day {
			at = ds.Start
			break
		}
	}
	block := []string{heading, "", entry, ""}
	if at > 0 && !isBlank(lines[at-1]) {
		block = append([]string{""}, block...)
	}
	return insertLines(lines, at, block...)
}

func (j *journalManager) AddEntry(vc models.VaultContext, in AddEntryInput) (*models.EntryResult, error) {
	vc, err := checkVault(vc)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("entry content is required: %w", ErrValidation)
	}
	if in.JournalPath != "" {
		vc = vc.WithJournalPath(in.JournalPath)
	}

	now := j.now()
	date := resolveDate(in.Date, now)
	heading := DayHeading(date)
	line := fmt.Sprintf("- %s - %s", FormatTime(now), CleanEntryText(in.Content))

	var result *models.EntryResult
	err = j.withWeekLock(vc, date, func() error {
		doc, err := j.loadOrCreate(vc, date)
		if err != nil {
			return err
		}
		doc.lines = insertEntry(doc.lines, heading, date.Day(), line)
		if err := j.save(doc); err != nil {
			return err
		}
		result = &models.EntryResult{
			Path:    doc.path,
			Heading: heading,
			Line:    line,
			Created: doc.created,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding journal entry: %w", err)
	}

	j.logEvent("journal.entry_added", map[string]any{
		"path":    result.Path,
		"date":    FormatDate(date),
		"created": result.Created,
	})
	return result, nil
}
