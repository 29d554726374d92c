package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/page"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// Outcome is the processed state of a form submission.
type Outcome struct {
	Path       string
	Values     map[string]string
	Errors     map[string]string
	Submission orchestrator.Submission
	Result     *orchestrator.Result
	Markdown   string
	Steps      *ui.Steps
}

// Valid reports whether the submission passed required-field checks.
func (o *Outcome) Valid() bool {
	return len(o.Errors) == 0
}

// FormState feeds the outcome back into the form page.
func (o *Outcome) FormState() page.FormState {
	return page.FormState{
		Values: o.Values,
		Errors: o.Errors,
		Result: o.Markdown,
		Steps:  o.Steps,
	}
}

// View is the page view showing the outcome.
func (o *Outcome) View() View {
	state := o.FormState()
	return View{Path: o.Path, Form: &state}
}

// StreamUpdate is one message of a streamed submission. Outcome is set on
// the last update only.
type StreamUpdate struct {
	Event   orchestrator.StreamEvent
	Steps   ui.Steps
	Outcome *Outcome
}

// Submit validates values against the form on path and, when valid, runs
// them through the orchestrator. Missing required fields come back as
// field errors without processing.
func (a *App) Submit(ctx context.Context, path string, values map[string]string) (*Outcome, error) {
	cfg, outcome, err := a.prepare(ctx, path, values)
	if err != nil || !outcome.Valid() {
		return outcome, err
	}
	if a.orchestrator == nil {
		outcome.Markdown = FormatResult(nil)
		return outcome, nil
	}

	result := a.orchestrator.Process(outcome.Submission)
	progress := NewProgress(cfg.WithDefaults().ProcessingLabel, result.Workers)
	progress.Apply(orchestrator.StreamEvent{Stage: orchestrator.StageComplete})
	a.finish(outcome, &result, progress)
	return outcome, nil
}

// Stream is Submit with progress. The channel yields an update per
// orchestrator event and closes after the update carrying the Outcome. An
// invalid submission yields that final update only. Cancelling ctx stops
// delivery; the orchestrator itself always runs to completion.
func (a *App) Stream(ctx context.Context, path string, values map[string]string) (<-chan StreamUpdate, error) {
	cfg, outcome, err := a.prepare(ctx, path, values)
	if err != nil {
		return nil, err
	}

	updates := make(chan StreamUpdate, 1)
	if !outcome.Valid() || a.orchestrator == nil {
		if outcome.Valid() {
			outcome.Markdown = FormatResult(nil)
		}
		updates <- StreamUpdate{Event: orchestrator.StreamEvent{Stage: orchestrator.StageComplete}, Outcome: outcome}
		close(updates)
		return updates, nil
	}

	workers := a.orchestrator.RelevantWorkers(outcome.Submission)
	names := make([]string, 0, len(workers))
	for _, worker := range workers {
		names = append(names, worker.Name)
	}
	progress := NewProgress(cfg.WithDefaults().ProcessingLabel, names)
	events := a.orchestrator.ProcessStream(outcome.Submission)

	go func() {
		defer close(updates)
		for ev := range events {
			progress.Apply(ev)
			update := StreamUpdate{Event: ev, Steps: progress.Steps()}
			if ev.Stage == orchestrator.StageComplete {
				a.finish(outcome, ev.Result, progress)
				update.Outcome = outcome
			}
			select {
			case updates <- update:
			case <-ctx.Done():
				return
			}
		}
	}()
	return updates, nil
}

func (a *App) prepare(ctx context.Context, path string, values map[string]string) (page.FormConfig, *Outcome, error) {
	if err := ctx.Err(); err != nil {
		return page.FormConfig{}, nil, err
	}
	if path == "" {
		path = a.HomePath()
	}
	p, ok := a.Page(path)
	if !ok {
		return page.FormConfig{}, nil, fmt.Errorf("%w: %s", ErrPageNotFound, normalizePath(path))
	}
	cfg, ok := p.Form()
	if !ok {
		return page.FormConfig{}, nil, fmt.Errorf("%w: %s", ErrNotForm, p.Path)
	}

	outcome := &Outcome{
		Path:   p.Path,
		Values: make(map[string]string, len(cfg.Fields)),
	}
	for _, key := range cfg.FieldKeys() {
		outcome.Values[key] = strings.TrimSpace(values[key])
	}
	if missing := cfg.MissingRequired(values); len(missing) > 0 {
		outcome.Errors = make(map[string]string, len(missing))
		labels := fieldLabels(cfg)
		for _, key := range missing {
			outcome.Errors[key] = labels[key] + " is required"
		}
		return cfg, outcome, nil
	}
	outcome.Submission = cfg.Collect(values)
	return cfg, outcome, nil
}

func (a *App) finish(outcome *Outcome, result *orchestrator.Result, progress *Progress) {
	outcome.Result = result
	outcome.Markdown = FormatResult(result)
	steps := progress.Steps()
	outcome.Steps = &steps
}

func fieldLabels(cfg page.FormConfig) map[string]string {
	labels := make(map[string]string, len(cfg.Fields))
	for _, field := range cfg.WithDefaults().Fields {
		label := field.Label
		if label == "" {
			label = page.TitleCase(field.Key)
		}
		labels[field.Key] = label
	}
	return labels
}
