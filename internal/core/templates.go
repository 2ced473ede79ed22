package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/valter-silva-au/vault-brain/internal/storage"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// TemplateManager finds vault templates and renders them with the
// {{token}} / {{#each}} / {{#if}} micro-language.
type TemplateManager interface {
	// LoadTemplate returns the named template from the vault's templates
	// folder. A missing template is reported as found=false, not an error.
	LoadTemplate(vc models.VaultContext, name string) (tmpl string, found bool, err error)
	Render(tmpl string, data map[string]any) string
}

type templateManager struct {
	fs  storage.FileSystem
	now func() time.Time
}

// NewTemplateManager creates a TemplateManager reading templates through fs.
// now supplies the value of {{DATETIME.Now}}.
func NewTemplateManager(fs storage.FileSystem, now func() time.Time) TemplateManager {
	if now == nil {
		now = time.Now
	}
	return &templateManager{fs: fs, now: now}
}

func (tm *templateManager) LoadTemplate(vc models.VaultContext, name string) (string, bool, error) {
	if name == "" {
		return "", false, nil
	}
	if !strings.HasSuffix(strings.ToLower(name), ".md") {
		name += ".md"
	}
	path := filepath.Join(vc.VaultRoot, vc.TemplatesFolderName, name)

	content, err := tm.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading template %s: %w", name, err)
	}
	return content, true, nil
}

func (tm *templateManager) Render(tmpl string, data map[string]any) string {
	return RenderTemplate(tmpl, data, tm.now())
}

// builtinWeeklyTemplate seeds a weekly file when the vault has no template:
// the title followed by all seven day headings.
const builtinWeeklyTemplate = `# Week {{week}} in {{year}}

{{#each days}}{{heading}}

{{/each}}`

// SampleWeeklyTemplate is the vault template written by "vb init". It shows
// the data available to weekly templates.
const SampleWeeklyTemplate = `---
week: {{year}}-W{{weekPadded}}
start: {{monday}}
end: {{sunday}}
created: {{DATETIME.Now}}
---
# {{title}}

## Tasks This Week

{{#each days}}{{heading}}

{{/each}}`

// weeklyTemplateData builds the data object exposed to weekly templates.
func weeklyTemplateData(key models.WeekKey) map[string]any {
	monday := MondayOf(key, time.Local)
	days := make([]any, 7)
	for i := range days {
		d := monday.AddDate(0, 0, i)
		days[i] = map[string]any{
			"day":     d.Day(),
			"dayName": d.Weekday().String(),
			"date":    FormatDate(d),
			"heading": DayHeading(d),
		}
	}
	return map[string]any{
		"title":      fmt.Sprintf("Week %d in %d", key.ISOWeek, key.ISOYear),
		"week":       key.ISOWeek,
		"weekPadded": fmt.Sprintf("%02d", key.ISOWeek),
		"year":       key.ISOYear,
		"monday":     FormatDate(monday),
		"sunday":     FormatDate(monday.AddDate(0, 0, 6)),
		"days":       days,
	}
}

// --- micro-language ---

type tmplNodeKind int

const (
	nodeText tmplNodeKind = iota
	nodeVar
	nodeEach
	nodeIf
)

type tmplNode struct {
	kind     tmplNodeKind
	text     string // literal text, or the raw opening tag for blocks
	path     string
	children []*tmplNode
}

// RenderTemplate renders tmpl against data. Unknown tokens render as the
// empty string; unbalanced block tags are emitted literally.
func RenderTemplate(tmpl string, data map[string]any, now time.Time) string {
	nodes := parseTemplate(tmpl)
	var b strings.Builder
	renderNodes(&b, nodes, []any{data}, now)
	return b.String()
}

func parseTemplate(src string) []*tmplNode {
	root := &tmplNode{}
	stack := []*tmplNode{root}
	top := func() *tmplNode { return stack[len(stack)-1] }

	for len(src) > 0 {
		open := strings.Index(src, "{{")
		if open < 0 {
			top().children = append(top().children, &tmplNode{kind: nodeText, text: src})
			break
		}
		closeIdx := strings.Index(src[open+2:], "}}")
		if closeIdx < 0 {
			top().children = append(top().children, &tmplNode{kind: nodeText, text: src})
			break
		}
		if open > 0 {
			top().children = append(top().children, &tmplNode{kind: nodeText, text: src[:open]})
		}
		raw := src[open : open+2+closeIdx+2]
		tag := strings.TrimSpace(src[open+2 : open+2+closeIdx])
		src = src[open+2+closeIdx+2:]

		switch {
		case strings.HasPrefix(tag, "#each "):
			n := &tmplNode{kind: nodeEach, text: raw, path: strings.TrimSpace(tag[len("#each "):])}
			top().children = append(top().children, n)
			stack = append(stack, n)
		case strings.HasPrefix(tag, "#if "):
			n := &tmplNode{kind: nodeIf, text: raw, path: strings.TrimSpace(tag[len("#if "):])}
			top().children = append(top().children, n)
			stack = append(stack, n)
		case tag == "/each" || tag == "/if":
			want := nodeEach
			if tag == "/if" {
				want = nodeIf
			}
			if len(stack) > 1 && top().kind == want {
				stack = stack[:len(stack)-1]
			} else {
				top().children = append(top().children, &tmplNode{kind: nodeText, text: raw})
			}
		default:
			top().children = append(top().children, &tmplNode{kind: nodeVar, text: raw, path: tag})
		}
	}

	// Unclosed blocks degrade to their literal opening tag followed by their body.
	for len(stack) > 1 {
		n := top()
		stack = stack[:len(stack)-1]
		parent := top()
		parent.children = parent.children[:len(parent.children)-1]
		parent.children = append(parent.children, &tmplNode{kind: nodeText, text: n.text})
		parent.children = append(parent.children, n.children...)
	}
	return root.children
}

func renderNodes(b *strings.Builder, nodes []*tmplNode, scopes []any, now time.Time) {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			b.WriteString(n.text)
		case nodeVar:
			if n.path == "DATETIME.Now" {
				b.WriteString(now.Format(DateTimeLayout))
				continue
			}
			v, _ := lookupScopes(scopes, n.path)
			b.WriteString(stringify(v))
		case nodeIf:
			v, _ := lookupScopes(scopes, n.path)
			if truthy(v) {
				renderNodes(b, n.children, scopes, now)
			}
		case nodeEach:
			v, _ := lookupScopes(scopes, n.path)
			rv := reflect.ValueOf(v)
			if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
				continue
			}
			for i := 0; i < rv.Len(); i++ {
				inner := append(append([]any(nil), scopes...), rv.Index(i).Interface())
				renderNodes(b, n.children, inner, now)
			}
		}
	}
}

// lookupScopes resolves a dotted path from the innermost scope outwards.
func lookupScopes(scopes []any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	if parts[0] == "this" {
		return lookupPath(scopes[len(scopes)-1], parts[1:])
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		if v, ok := lookupPath(scopes[i], parts); ok {
			return v, true
		}
	}
	return nil, false
}

func lookupPath(v any, parts []string) (any, bool) {
	cur := v
	for _, p := range parts {
		rv := reflect.ValueOf(cur)
		if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(p).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		cur = mv.Interface()
	}
	return cur, true
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
