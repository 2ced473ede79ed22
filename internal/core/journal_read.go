package core

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

var (
	weekFileDatePattern = regexp.MustCompile(`(\d{4})-W(\d{2})`)
	dayFileDatePattern  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// FileNameDate extracts the date a journal file name refers to. Weekly
// names resolve to the Monday of their ISO week.
func FileNameDate(name string) (time.Time, bool) {
	if m := weekFileDatePattern.FindStringSubmatch(name); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		if week >= 1 && week <= 53 {
			return MondayOf(models.WeekKey{ISOYear: year, ISOWeek: week}, time.Local), true
		}
	}
	if m := dayFileDatePattern.FindString(name); m != "" {
		if t, err := ParseLocalDate(m); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// optionalDate parses a range bound. Empty or malformed bounds are open.
func optionalDate(s string) *time.Time {
	t, err := ParseLocalDate(s)
	if err != nil {
		return nil
	}
	return &t
}

func (j *journalManager) ReadEntries(vc models.VaultContext, in ReadEntriesInput) ([]models.JournalFile, error) {
	vc, err := checkVault(vc)
	if err != nil {
		return nil, err
	}
	if in.JournalPath != "" {
		vc = vc.WithJournalPath(in.JournalPath)
	}
	limit := in.MaxEntries
	if limit <= 0 {
		limit = DefaultMaxEntries
	}
	includeContent := in.IncludeContent == nil || *in.IncludeContent
	from, to := optionalDate(in.FromDate), optionalDate(in.ToDate)

	root := filepath.Join(vc.VaultRoot, vc.JournalPath)
	paths, err := j.fs.WalkMarkdown(root)
	if err != nil {
		return nil, fmt.Errorf("scanning journal: %w", err)
	}

	files := make([]models.JournalFile, 0, len(paths))
	for _, path := range paths {
		file := models.JournalFile{Path: path, DateSource: "filename"}
		if rel, err := filepath.Rel(vc.VaultRoot, path); err == nil {
			file.RelPath = filepath.ToSlash(rel)
		}
		date, ok := FileNameDate(filepath.Base(path))
		if !ok {
			mtime, err := j.fs.ModTime(path)
			if err != nil {
				return nil, fmt.Errorf("scanning journal: %w", err)
			}
			date = mtime
			file.DateSource = "mtime"
		}
		if !IsDateInRange(date, from, to) {
			continue
		}
		file.Date = date
		files = append(files, file)
	}

	sort.SliceStable(files, func(a, b int) bool {
		if !files[a].Date.Equal(files[b].Date) {
			return files[a].Date.After(files[b].Date)
		}
		return files[a].Path < files[b].Path
	})
	if len(files) > limit {
		files = files[:limit]
	}

	if includeContent {
		for i := range files {
			content, err := j.fs.ReadFile(files[i].Path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", files[i].RelPath, err)
			}
			files[i].Content = content
		}
	}
	return files, nil
}
