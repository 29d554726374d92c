package orchestrator

import (
	"time"

	"github.com/LyzrCore/spaces/pkg/blueprint"
)

const (
	defaultTitle  = "Incident"
	defaultSystem = "Unknown System"

	fieldTitle  = "title"
	fieldSystem = "affected_system"

	fallbackWorkerLimit = 3
)

// StageDelays are the pauses ProcessStream takes after each stage.
type StageDelays struct {
	Analyzing    time.Duration
	Processing   time.Duration
	Synthesizing time.Duration
}

// DefaultStageDelays returns the delays used when none are configured.
func DefaultStageDelays() StageDelays {
	return StageDelays{
		Analyzing:    500 * time.Millisecond,
		Processing:   300 * time.Millisecond,
		Synthesizing: 300 * time.Millisecond,
	}
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithIDGenerator swaps the identifier source. A nil generator is ignored.
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *Orchestrator) {
		if gen != nil {
			o.ids = gen
		}
	}
}

// WithStageDelays overrides the stream pacing. Negative values are treated
// as zero.
func WithStageDelays(delays StageDelays) Option {
	return func(o *Orchestrator) {
		o.delays = StageDelays{
			Analyzing:    nonNegative(delays.Analyzing),
			Processing:   nonNegative(delays.Processing),
			Synthesizing: nonNegative(delays.Synthesizing),
		}
	}
}

// WithSleep replaces the function used to wait between stream stages.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *Orchestrator) {
		if sleep != nil {
			o.sleep = sleep
		}
	}
}

// Orchestrator answers submissions for one blueprint. It holds no mutable
// state, so a single value may serve concurrent callers.
type Orchestrator struct {
	blueprint blueprint.Blueprint
	ids       IDGenerator
	delays    StageDelays
	sleep     func(time.Duration)
}

// New constructs an orchestrator bound to bp.
func New(bp blueprint.Blueprint, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		blueprint: bp,
		ids:       RandomIDs(),
		delays:    DefaultStageDelays(),
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Blueprint returns the blueprint the orchestrator was built with.
func (o *Orchestrator) Blueprint() blueprint.Blueprint {
	return o.blueprint
}

// RelevantWorkers returns the workers whose triggers occur in the
// submission text, in declared order. When nothing matches, the first three
// workers (or fewer) stand in.
func (o *Orchestrator) RelevantWorkers(input Submission) []blueprint.Agent {
	return relevantWorkers(o.blueprint.Workers(), input.Text())
}

func relevantWorkers(workers []blueprint.Agent, text string) []blueprint.Agent {
	var matched []blueprint.Agent
	for _, worker := range workers {
		if worker.Matches(text) {
			matched = append(matched, worker)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	return workers[:min(fallbackWorkerLimit, len(workers))]
}

// Process analyses a submission and returns a fresh Result. It never fails;
// missing fields read as absent values.
func (o *Orchestrator) Process(input Submission) Result {
	text := input.Text()
	domain := o.blueprint.Domain()
	p := profileFor(domain)

	workers := relevantWorkers(o.blueprint.Workers(), text)
	names := make([]string, 0, len(workers))
	for _, worker := range workers {
		names = append(names, worker.Name)
	}

	result := Result{
		Identifier:      o.ids.NextID(p.prefix),
		Domain:          domain,
		Title:           input.String(fieldTitle, defaultTitle),
		Status:          p.status,
		Severity:        DetermineSeverity(text),
		AssignedSystem:  input.String(fieldSystem, defaultSystem),
		Workers:         names,
		Timeline:        BuildTimeline(text),
		RootCause:       RootCause(text),
		Resolution:      Resolution(text),
		Recommendations: append([]string(nil), defaultRecommendations...),
	}
	if p.finish != nil {
		p.finish(&result, input)
	}
	return result
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
