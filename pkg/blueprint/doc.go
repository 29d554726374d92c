// Package blueprint describes the agent rosters the mock orchestrator
// simulates: one manager and a list of workers, each worker tagged with
// trigger keywords. Blueprints are immutable once constructed; accessors hand
// out copies so callers can never mutate the roster the orchestrator reads.
//
// Blueprints are usually declared in YAML:
//
//	id: it-incident-response
//	name: IT Incident Response
//	domain: it_operations
//	manager:
//	  name: Incident Coordinator
//	  role: Orchestrates incident response workflow
//	workers:
//	  - name: System Monitoring
//	    role: Monitors system health and detects anomalies
//	    triggers: [cpu, memory, disk]
package blueprint
