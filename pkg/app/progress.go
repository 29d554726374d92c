package app

import (
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/ui"
)

const (
	stepAnalyzing    = "Analyzing request"
	stepSynthesizing = "Synthesizing results"
	defaultStepTitle = "Processing..."
)

// Progress tracks the processing steps shown while a submission streams:
// analysis, one step per relevant worker, synthesis.
type Progress struct {
	title string
	steps []ui.Step
	index map[string]int
}

// NewProgress lays out pending steps for the given workers.
func NewProgress(title string, workers []string) *Progress {
	if title == "" {
		title = defaultStepTitle
	}
	p := &Progress{
		title: title,
		steps: make([]ui.Step, 0, len(workers)+2),
		index: make(map[string]int, len(workers)),
	}
	p.steps = append(p.steps, ui.Step{Label: stepAnalyzing, Status: ui.StepPending})
	for _, worker := range workers {
		if _, dup := p.index[worker]; dup {
			continue
		}
		p.index[worker] = len(p.steps)
		p.steps = append(p.steps, ui.Step{Label: worker, Status: ui.StepPending})
	}
	p.steps = append(p.steps, ui.Step{Label: stepSynthesizing, Status: ui.StepPending})
	return p
}

// Apply advances the steps for ev. Every step before the active one is
// complete; the complete stage finishes them all.
func (p *Progress) Apply(ev orchestrator.StreamEvent) {
	switch ev.Stage {
	case orchestrator.StageAnalyzing:
		p.activate(0)
	case orchestrator.StageProcessing:
		if i, ok := p.index[ev.Agent]; ok {
			p.activate(i)
		}
	case orchestrator.StageSynthesizing:
		p.activate(len(p.steps) - 1)
	case orchestrator.StageComplete:
		p.activate(len(p.steps))
	}
}

func (p *Progress) activate(active int) {
	for i := range p.steps {
		switch {
		case i < active:
			p.steps[i].Status = ui.StepComplete
		case i == active:
			p.steps[i].Status = ui.StepActive
		default:
			p.steps[i].Status = ui.StepPending
		}
	}
}

// Done reports whether every step is complete.
func (p *Progress) Done() bool {
	for _, step := range p.steps {
		if step.Status != ui.StepComplete {
			return false
		}
	}
	return true
}

// Steps returns a snapshot of the steps.
func (p *Progress) Steps() ui.Steps {
	return ui.Steps{Title: p.title, Steps: append([]ui.Step(nil), p.steps...)}
}
