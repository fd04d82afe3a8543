package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/helmcode/jira-ai/pkg/adf"
)

// Ticket is the tracker document for a single issue. It is decoded once per
// run and never modified.
type Ticket struct {
	Key    string       `json:"key"`
	Fields TicketFields `json:"fields"`
}

type TicketFields struct {
	Summary     string       `json:"summary"`
	Status      *NamedField  `json:"status"`
	Priority    *NamedField  `json:"priority"`
	Reporter    *User        `json:"reporter"`
	Assignee    *User        `json:"assignee"`
	Created     string       `json:"created"`
	Updated     string       `json:"updated"`
	Description adf.Field    `json:"description"`
	Environment adf.Field    `json:"environment"`
	Components  []NamedField `json:"components"`
	Labels      []string     `json:"labels"`
}

type NamedField struct {
	Name string `json:"name"`
}

type User struct {
	DisplayName string `json:"displayName"`
}

// DecodeTicket decodes a raw tracker document.
func DecodeTicket(raw []byte) (*Ticket, error) {
	var t Ticket
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode ticket: %w", err)
	}
	return &t, nil
}

// Description returns the description as plain text.
func (t *Ticket) Description() string {
	return t.Fields.Description.String()
}

// ComponentNames returns the component names in tracker order.
func (t *Ticket) ComponentNames() []string {
	names := make([]string, 0, len(t.Fields.Components))
	for _, c := range t.Fields.Components {
		names = append(names, c.Name)
	}
	return names
}

// FileSample is one scanned source file, truncated to the per-file line cap.
type FileSample struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"-" yaml:"-"`
	Lines   int    `json:"lines" yaml:"lines"`
}

// WorkspaceSnapshot is the bounded result of one workspace scan.
type WorkspaceSnapshot struct {
	Root      string       `json:"root" yaml:"root"`
	Files     []FileSample `json:"files" yaml:"files"`
	Structure []string     `json:"structure" yaml:"structure"`
}

// TotalFiles returns the number of sampled files.
func (s *WorkspaceSnapshot) TotalFiles() int {
	if s == nil {
		return 0
	}
	return len(s.Files)
}

// ResultSource tells where an analysis came from.
type ResultSource string

const (
	SourceRemote    ResultSource = "remote"
	SourceHeuristic ResultSource = "heuristic"
)

// AnalysisResult is the text shown in the analysis pane plus its label.
type AnalysisResult struct {
	RunID        string       `json:"run_id" yaml:"run_id"`
	TicketKey    string       `json:"ticket_key" yaml:"ticket_key"`
	Label        string       `json:"label" yaml:"label"`
	Source       ResultSource `json:"source" yaml:"source"`
	Model        string       `json:"model,omitempty" yaml:"model,omitempty"`
	Warning      string       `json:"warning,omitempty" yaml:"warning,omitempty"`
	FilesScanned int          `json:"files_scanned" yaml:"files_scanned"`
	Text         string       `json:"text" yaml:"text"`
	GeneratedAt  time.Time    `json:"generated_at" yaml:"generated_at"`
}

// Report bundles everything one run produced for display.
type Report struct {
	TicketKey string             `json:"ticket_key" yaml:"ticket_key"`
	Details   string             `json:"details" yaml:"details"`
	Analysis  *AnalysisResult    `json:"analysis" yaml:"analysis"`
	Workspace *WorkspaceSnapshot `json:"workspace,omitempty" yaml:"workspace,omitempty"`
}
