package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

var (
	level2HeadingPattern = regexp.MustCompile(`^##\s`)
	dayHeadingPattern    = regexp.MustCompile(`^##\s+(\d{1,2})\s+\w+`)
	titlePattern         = regexp.MustCompile(`^#\s`)
	taskLinePattern      = regexp.MustCompile(`^( *)- \[([ xX])\] (.*)$`)
)

// Section is a half-open range of lines [Start, End) beginning at a heading.
type Section struct {
	Start int
	End   int
}

// DaySection is a day heading found in a weekly document.
type DaySection struct {
	Section
	Day     int
	Heading string
}

// SplitLines splits a document into lines, accepting \n or \r\n. A single
// trailing newline does not produce an empty final line.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}
	}
	return strings.Split(content, "\n")
}

// JoinLines joins lines with \n and a trailing newline.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// IsLevel2Heading reports whether line opens a "##" section.
func IsLevel2Heading(line string) bool {
	return level2HeadingPattern.MatchString(line)
}

// FindSection locates the first heading matching pred. The section ends at
// the next level-2 heading of any kind, or at the end of the document.
func FindSection(lines []string, pred func(line string) bool) (Section, bool) {
	for i, line := range lines {
		if !pred(line) {
			continue
		}
		end := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if IsLevel2Heading(lines[j]) {
				end = j
				break
			}
		}
		return Section{Start: i, End: end}, true
	}
	return Section{}, false
}

// FindHeading locates the section whose heading equals heading exactly.
func FindHeading(lines []string, heading string) (Section, bool) {
	return FindSection(lines, func(line string) bool { return line == heading })
}

// DayHeading returns the exact heading for date, e.g. "## 30 Thursday".
func DayHeading(date time.Time) string {
	return fmt.Sprintf("## %d %s", date.Day(), date.Weekday())
}

// WeekTitle returns the title line of a weekly file.
func WeekTitle(key models.WeekKey) string {
	return fmt.Sprintf("# Week %d in %d", key.ISOWeek, key.ISOYear)
}

// DaySections lists every day heading in document order.
func DaySections(lines []string) []DaySection {
	var out []DaySection
	for i, line := range lines {
		m := dayHeadingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		day, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		sec, _ := FindSection(lines[i:], func(string) bool { return true })
		out = append(out, DaySection{
			Section: Section{Start: i, End: i + sec.End},
			Day:     day,
			Heading: line,
		})
	}
	return out
}

// FindTitle returns the index of the first level-1 heading.
func FindTitle(lines []string) (int, bool) {
	for i, line := range lines {
		if titlePattern.MatchString(line) {
			return i, true
		}
	}
	return 0, false
}

// ParseTaskLine parses a checkbox line. The line index is left at zero.
func ParseTaskLine(line string) (models.Task, bool) {
	m := taskLinePattern.FindStringSubmatch(line)
	if m == nil {
		return models.Task{}, false
	}
	return models.Task{
		Indent:      len(m[1]),
		Completed:   m[2] != " ",
		Description: m[3],
	}, true
}

// ParseTasks returns the checkbox lines inside sec in document order.
func ParseTasks(lines []string, sec Section) []models.Task {
	var tasks []models.Task
	for i := sec.Start + 1; i < sec.End && i < len(lines); i++ {
		task, ok := ParseTaskLine(lines[i])
		if !ok {
			continue
		}
		task.LineIndex = i
		tasks = append(tasks, task)
	}
	return tasks
}

// RenderTaskLine renders a checkbox line with the given indent.
func RenderTaskLine(indent int, completed bool, description string) string {
	box := " "
	if completed {
		box = "x"
	}
	return fmt.Sprintf("%s- [%s] %s", strings.Repeat(" ", indent), box, description)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// insertLines returns lines with block inserted before index at.
func insertLines(lines []string, at int, block ...string) []string {
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:at]...)
	out = append(out, block...)
	out = append(out, lines[at:]...)
	return out
}
