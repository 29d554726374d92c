package blueprint

import "strings"

// Known blueprint domains. Domains select the result profile the
// orchestrator applies; unknown domains fall back to the generic profile.
const (
	DomainITOperations    = "it_operations"
	DomainCustomerService = "customer_service"
)

// Agent describes a single participant in a blueprint.
type Agent struct {
	Name     string   `json:"name" yaml:"name"`
	Role     string   `json:"role" yaml:"role"`
	Triggers []string `json:"triggers,omitempty" yaml:"triggers,omitempty"`
}

// Matches reports whether any trigger occurs in text. Text is expected to be
// lowercased already; triggers are compared lowercased.
func (a Agent) Matches(text string) bool {
	for _, trigger := range a.Triggers {
		t := strings.ToLower(strings.TrimSpace(trigger))
		if t == "" {
			continue
		}
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func (a Agent) clone() Agent {
	out := a
	out.Triggers = normalizeTriggers(a.Triggers)
	return out
}

// Spec is the decodable form of a blueprint.
type Spec struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Domain  string  `json:"domain" yaml:"domain"`
	Manager Agent   `json:"manager" yaml:"manager"`
	Workers []Agent `json:"workers" yaml:"workers"`
}

// Blueprint is an immutable manager + worker roster.
type Blueprint struct {
	id      string
	name    string
	domain  string
	manager Agent
	workers []Agent
}

// New builds a Blueprint from spec. Triggers are lowercased, trimmed and
// de-duplicated; empty triggers are dropped so they can never match every
// input. An empty worker roster is valid.
func New(spec Spec) Blueprint {
	workers := make([]Agent, 0, len(spec.Workers))
	for _, worker := range spec.Workers {
		workers = append(workers, worker.clone())
	}
	return Blueprint{
		id:      strings.TrimSpace(spec.ID),
		name:    strings.TrimSpace(spec.Name),
		domain:  strings.ToLower(strings.TrimSpace(spec.Domain)),
		manager: spec.Manager.clone(),
		workers: workers,
	}
}

func (b Blueprint) ID() string     { return b.id }
func (b Blueprint) Name() string   { return b.name }
func (b Blueprint) Domain() string { return b.domain }

// Manager returns a copy of the manager agent.
func (b Blueprint) Manager() Agent {
	return b.manager.clone()
}

// Workers returns a copy of the worker roster in declared order.
func (b Blueprint) Workers() []Agent {
	out := make([]Agent, 0, len(b.workers))
	for _, worker := range b.workers {
		out = append(out, worker.clone())
	}
	return out
}

// WorkerCount reports the roster size without copying it.
func (b Blueprint) WorkerCount() int {
	return len(b.workers)
}

// Spec returns the decodable form of the blueprint.
func (b Blueprint) Spec() Spec {
	return Spec{
		ID:      b.id,
		Name:    b.name,
		Domain:  b.domain,
		Manager: b.Manager(),
		Workers: b.Workers(),
	}
}

func normalizeTriggers(triggers []string) []string {
	if len(triggers) == 0 {
		return nil
	}
	out := make([]string, 0, len(triggers))
	seen := make(map[string]struct{}, len(triggers))
	for _, trigger := range triggers {
		t := strings.ToLower(strings.TrimSpace(trigger))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
