package editor

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/task"
)

// DueLayout is how due dates are written in the editor.
const DueLayout = "2006-01-02 15:04"

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// ID is the task ID (only for updates).
	ID string
	Title string
	// Due is the due date in DueLayout, or empty.
	Due string
	// Estimate is in minutes; 0 means none.
	Estimate int
	// Priority is the override, or empty to use the computed priority.
	Priority string
	// Completed is only shown for updates.
	Completed   bool
	Description string
}

// DataFromTask creates TaskData from an existing task. Due dates are shown in
// loc; an unparsable stored due date is shown as stored.
func DataFromTask(t task.Task, loc *time.Location) TaskData {
	data := TaskData{
		IsUpdate:    true,
		ID:          t.ID,
		Title:       t.Title,
		Estimate:    t.Estimate(),
		Completed:   t.Completed,
		Description: t.DescriptionText(),
	}
	if due, ok := t.Due(loc); ok {
		data.Due = due.In(loc).Format(DueLayout)
	} else if t.ExpireAt != nil {
		data.Due = *t.ExpireAt
	}
	if t.PriorityOverride != nil {
		data.Priority = string(*t.PriorityOverride)
	}
	return data
}

var taskTemplate = template.Must(template.New("task").Parse(`title = {{ printf "%q" .Title }}
due = {{ printf "%q" .Due }} # YYYY-MM-DD HH:MM, empty for none
estimate = {{ .Estimate }} # minutes, 0 for none
priority = {{ printf "%q" .Priority }} # high, medium, low; empty to compute
{{- if .IsUpdate }}
completed = {{ .Completed }}
{{- end }}
---
{{ .Description }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Title       string `toml:"title"`
	Due         string `toml:"due"`
	Estimate    int    `toml:"estimate"`
	Priority    string `toml:"priority"`
	Completed   *bool  `toml:"completed"`
	Description string `toml:"-"`
}

// ParseTaskTOML parses the TOML content from the editor.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed ParsedTask
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Description = internalstrings.NormalizeText(strings.TrimLeft(body, "\n"))
	parsed.Due = strings.TrimSpace(parsed.Due)

	title, err := task.NormalizeTitle(parsed.Title)
	if err != nil {
		return nil, err
	}
	parsed.Title = title

	if parsed.Estimate < 0 {
		return nil, fmt.Errorf("%w: got %d", task.ErrNegativeEstimate, parsed.Estimate)
	}
	if strings.TrimSpace(parsed.Priority) != "" {
		p, err := task.ParsePriority(parsed.Priority)
		if err != nil {
			return nil, err
		}
		parsed.Priority = string(p)
	} else {
		parsed.Priority = ""
	}

	return &parsed, nil
}

// ApplyTo copies the edited fields onto d.
func (p *ParsedTask) ApplyTo(d *task.Draft) {
	d.Title = p.Title

	d.Description = nil
	if p.Description != "" {
		d.Description = task.StringPtr(p.Description)
	}

	d.ExpireAt = nil
	if p.Due != "" {
		d.ExpireAt = task.StringPtr(p.Due)
	}

	d.EstimatedMinutes = nil
	if p.Estimate > 0 {
		d.EstimatedMinutes = task.MinutesPtr(p.Estimate)
	}

	d.PriorityOverride = nil
	if p.Priority != "" {
		d.PriorityOverride = task.PriorityPtr(task.Priority(p.Priority))
	}

	if p.Completed != nil {
		d.Completed = *p.Completed
	}
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}

// EditTaskWithData opens the editor with pre-populated data and returns the
// parsed result.
func EditTaskWithData(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}
	edited, err := EditContent(content, "tasks-*.md")
	if err != nil {
		return nil, err
	}
	return ParseTaskTOML(edited)
}
