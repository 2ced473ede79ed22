package core

import (
	"regexp"
	"strings"
)

var (
	atxHeadingPattern = regexp.MustCompile(`^#{1,6}(\s|$)`)
	listItemPattern   = regexp.MustCompile(`^\s*([-*+]|\d+[.)])\s`)
	fencePattern      = regexp.MustCompile("^\\s*(```|~~~)")
)

type mdLine struct {
	text     string
	verbatim bool // inside frontmatter or a fenced code block
}

func (l mdLine) blank() bool   { return !l.verbatim && l.text == "" }
func (l mdLine) heading() bool { return !l.verbatim && atxHeadingPattern.MatchString(l.text) }
func (l mdLine) item() bool    { return !l.verbatim && listItemPattern.MatchString(l.text) }

// NormalizeSpacing enforces the blank-line conventions of the journal:
// no consecutive blank lines, one blank line around headings, no blank lines
// between items of the same list, and exactly one trailing newline.
// Frontmatter and fenced code blocks are left untouched. Non-blank lines are
// never reordered or removed, and the result is a fixed point.
func NormalizeSpacing(doc string) string {
	lines := classifyLines(SplitLines(doc))
	lines = dropBlankBetweenItems(lines)
	lines = padHeadings(lines)
	lines = collapseBlanks(lines)

	if len(lines) == 0 {
		return "\n"
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return JoinLines(out)
}

func classifyLines(raw []string) []mdLine {
	lines := make([]mdLine, len(raw))
	// Frontmatter opens on the first non-blank line.
	first := 0
	for first < len(raw) && strings.TrimSpace(raw[first]) == "" {
		first++
	}
	inFrontmatter := first < len(raw) && strings.TrimRight(raw[first], " \t") == "---"
	inFence := false
	for i, text := range raw {
		switch {
		case i < first:
			lines[i] = mdLine{text: ""}
		case inFrontmatter:
			lines[i] = mdLine{text: text, verbatim: true}
			if i > first && strings.TrimRight(text, " \t") == "---" {
				inFrontmatter = false
			}
		case fencePattern.MatchString(text):
			lines[i] = mdLine{text: text, verbatim: true}
			inFence = !inFence
		case inFence:
			lines[i] = mdLine{text: text, verbatim: true}
		case strings.TrimSpace(text) == "":
			lines[i] = mdLine{text: ""}
		default:
			lines[i] = mdLine{text: text}
		}
	}
	return lines
}

func dropBlankBetweenItems(lines []mdLine) []mdLine {
	out := make([]mdLine, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if !lines[i].blank() {
			out = append(out, lines[i])
			continue
		}
		j := i
		for j < len(lines) && lines[j].blank() {
			j++
		}
		prevItem := len(out) > 0 && out[len(out)-1].item()
		nextItem := j < len(lines) && lines[j].item()
		if !(prevItem && nextItem) {
			out = append(out, lines[i:j]...)
		}
		i = j - 1
	}
	return out
}

func padHeadings(lines []mdLine) []mdLine {
	out := make([]mdLine, 0, len(lines)+8)
	for i, l := range lines {
		if l.heading() && len(out) > 0 && !out[len(out)-1].blank() {
			out = append(out, mdLine{})
		}
		out = append(out, l)
		if l.heading() && i+1 < len(lines) && !lines[i+1].blank() {
			out = append(out, mdLine{})
		}
	}
	return out
}

func collapseBlanks(lines []mdLine) []mdLine {
	out := make([]mdLine, 0, len(lines))
	for _, l := range lines {
		if l.blank() && (len(out) == 0 || out[len(out)-1].blank()) {
			continue
		}
		out = append(out, l)
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1].text) == "" {
		out = out[:len(out)-1]
	}
	return out
}
