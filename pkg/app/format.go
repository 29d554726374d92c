package app

import (
	"fmt"
	"strings"

	"github.com/LyzrCore/spaces/pkg/blueprint"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
)

const (
	resultHeading       = "### Result\n\n"
	noOrchestratorText  = "*Processing complete (no orchestrator configured)*"
	emptyResultMarkdown = "*No result*"
)

var identifierLabels = map[string]string{
	blueprint.DomainITOperations:    "Incident Id",
	blueprint.DomainCustomerService: "Ticket Id",
}

// FormatResult renders a result as the markdown shown under a form,
// starting with the "### Result" heading. A nil result means no
// orchestrator was configured.
func FormatResult(result *orchestrator.Result) string {
	if result == nil {
		return resultHeading + noOrchestratorText
	}
	return resultHeading + formatFields(result)
}

func formatFields(r *orchestrator.Result) string {
	var b strings.Builder
	scalar := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "**%s:** %s\n\n", label, value)
		}
	}
	list := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "**%s:**\n", label)
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}

	idLabel, ok := identifierLabels[r.Domain]
	if !ok {
		idLabel = "Request Id"
	}
	scalar(idLabel, r.Identifier)
	scalar("Title", r.Title)
	scalar("Status", r.Status)
	scalar("Severity", r.Severity.String())
	scalar("Affected System", r.AssignedSystem)
	scalar("Assigned To", r.AssignedTo)
	scalar("Category", r.Category)
	scalar("Response", r.Response)
	scalar("Resolution Time", r.ResolutionTime)

	events := make([]string, 0, len(r.Timeline))
	for _, event := range r.Timeline {
		events = append(events, event.Event)
	}
	list("Timeline", events)
	scalar("Root Cause", r.RootCause)
	scalar("Resolution", r.Resolution)
	list("Recommendations", r.Recommendations)
	scalar("Message", r.Message)

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return emptyResultMarkdown
	}
	return out
}
