package orchestrator

import (
	"fmt"
	"time"
)

// Stage identifies a step of the streamed pipeline.
type Stage string

const (
	StageAnalyzing    Stage = "analyzing"
	StageProcessing   Stage = "processing"
	StageSynthesizing Stage = "synthesizing"
	StageComplete     Stage = "complete"
)

// StreamEvent is a progress update from ProcessStream. Result is set only
// on the complete event.
type StreamEvent struct {
	Stage   Stage   `json:"stage"`
	Agent   string  `json:"agent,omitempty"`
	Message string  `json:"message,omitempty"`
	Result  *Result `json:"result,omitempty"`
}

const (
	messageAnalyzing    = "Analyzing your request..."
	messageSynthesizing = "Synthesizing results..."
)

// ProcessStream replays Process as a sequence of progress events: the
// manager analyzing, one event per relevant worker, the manager
// synthesizing, then the complete event carrying the result. The channel is
// closed after the complete event.
//
// The producer always runs to completion. The channel buffers every event
// so a consumer that stops reading never blocks it.
func (o *Orchestrator) ProcessStream(input Submission) <-chan StreamEvent {
	workers := o.RelevantWorkers(input)
	manager := o.blueprint.Manager()

	events := make(chan StreamEvent, len(workers)+3)
	go func() {
		defer close(events)

		events <- StreamEvent{Stage: StageAnalyzing, Agent: manager.Name, Message: messageAnalyzing}
		o.pause(o.delays.Analyzing)

		for _, worker := range workers {
			events <- StreamEvent{
				Stage:   StageProcessing,
				Agent:   worker.Name,
				Message: fmt.Sprintf("Processing: %s", worker.Role),
			}
			o.pause(o.delays.Processing)
		}

		events <- StreamEvent{Stage: StageSynthesizing, Agent: manager.Name, Message: messageSynthesizing}
		o.pause(o.delays.Synthesizing)

		result := o.Process(input)
		events <- StreamEvent{Stage: StageComplete, Result: &result}
	}()
	return events
}

func (o *Orchestrator) pause(d time.Duration) {
	if d > 0 {
		o.sleep(d)
	}
}
