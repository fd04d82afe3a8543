package analyzer

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/helmcode/jira-ai/pkg/config"
	"github.com/helmcode/jira-ai/pkg/formatter"
	"github.com/helmcode/jira-ai/pkg/model"
)

// TicketSource fetches the raw tracker document for a key.
type TicketSource interface {
	FetchIssue(ctx context.Context, key string) ([]byte, error)
}

// WorkspaceScanner produces a bounded snapshot of the workspace.
type WorkspaceScanner interface {
	Scan(ctx context.Context) (*model.WorkspaceSnapshot, error)
}

// StageKind names a pipeline step.
type StageKind string

const (
	StageFetching   StageKind = "fetching"
	StageFormatting StageKind = "formatting"
	StageScanning   StageKind = "scanning"
	StageAnalyzing  StageKind = "analyzing"
	StageDone       StageKind = "done"
)

// Stage is a progress message. Details is set once the ticket has been
// formatted so the ticket pane can fill before the analysis finishes.
type Stage struct {
	Kind    StageKind
	Message string
	Details string
}

// Options tune a single run.
type Options struct {
	// Offline skips the completion service.
	Offline bool
}

// Pipeline runs fetch, format, scan and analysis in order for one ticket.
type Pipeline struct {
	cfg      *config.Config
	source   TicketSource
	scanner  WorkspaceScanner
	analyzer *Analyzer
	log      zerolog.Logger
}

func NewPipeline(cfg *config.Config, source TicketSource, scanner WorkspaceScanner, analyzer *Analyzer, log zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, source: source, scanner: scanner, analyzer: analyzer, log: log}
}

// Run executes one analysis. Missing tracker credentials and fetch failures
// abort the run and return no report; every later failure degrades to
// substitute text. Progress messages are sent on progress when it is not nil.
func (p *Pipeline) Run(ctx context.Context, key string, opts Options, progress chan<- Stage) (*model.Report, error) {
	runID := newRunID()
	log := p.log.With().Str("run_id", runID).Str("ticket", key).Logger()

	if err := p.cfg.ValidateTracker(); err != nil {
		return nil, err
	}

	emit(ctx, progress, Stage{Kind: StageFetching, Message: fmt.Sprintf("Fetching JIRA bug %s...", key)})
	started := time.Now()
	raw, err := p.source.FetchIssue(ctx, key)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		return nil, err
	}
	log.Info().Dur("elapsed", time.Since(started)).Msg("ticket fetched")

	details := formatter.FormatRaw(raw)
	ticket, err := model.DecodeTicket(raw)
	if err != nil {
		log.Warn().Err(err).Msg("ticket document malformed, analysing key only")
		ticket = &model.Ticket{Key: key}
	}
	if ticket.Key == "" {
		ticket.Key = key
	}
	emit(ctx, progress, Stage{Kind: StageFormatting, Message: "Ticket details loaded", Details: details})

	emit(ctx, progress, Stage{Kind: StageScanning, Message: "Scanning workspace for relevant code files..."})
	snapshot, err := p.scanner.Scan(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("workspace scan incomplete")
	}
	if snapshot == nil {
		snapshot = &model.WorkspaceSnapshot{Root: p.cfg.Workspace.Path}
	}
	log.Info().Int("files", snapshot.TotalFiles()).Msg("workspace scanned")

	var result *model.AnalysisResult
	if opts.Offline {
		emit(ctx, progress, Stage{Kind: StageAnalyzing, Message: "Generating pattern-based analysis..."})
		result = p.analyzer.Offline(ticket, snapshot)
	} else {
		emit(ctx, progress, Stage{Kind: StageAnalyzing, Message: fmt.Sprintf("Analyzing with %s...", p.cfg.LLM.Model)})
		result = p.analyzer.Analyze(ctx, ticket, snapshot)
	}
	result.RunID = runID
	log.Info().Str("source", string(result.Source)).Msg("analysis complete")

	emit(ctx, progress, Stage{Kind: StageDone, Message: fmt.Sprintf("Analysis completed for %s", key)})

	return &model.Report{
		TicketKey: ticket.Key,
		Details:   details,
		Analysis:  result,
		Workspace: snapshot,
	}, nil
}

func emit(ctx context.Context, progress chan<- Stage, stage Stage) {
	if progress == nil {
		return
	}
	select {
	case progress <- stage:
	case <-ctx.Done():
	}
}

func newRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return ""
	}
	return id.String()
}
