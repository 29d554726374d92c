package orchestrator

import "github.com/LyzrCore/spaces/pkg/blueprint"

// DomainDefault names the profile used for any domain without its own entry.
const DomainDefault = "default"

// profile is the per-domain shaping applied on top of the shared analysis.
type profile struct {
	prefix string
	status string
	finish func(result *Result, input Submission)
}

var profiles = map[string]profile{
	blueprint.DomainITOperations: {
		prefix: "INC",
		status: "In Progress",
		finish: func(result *Result, _ Submission) {
			result.AssignedTo = "On-Call Team"
		},
	},
	blueprint.DomainCustomerService: {
		prefix: "TKT",
		status: "Resolved",
		finish: func(result *Result, _ Submission) {
			result.Category = "General Inquiry"
			result.Response = "Thank you for reaching out. Based on your inquiry, here's what we found..."
			result.ResolutionTime = "15 minutes"
		},
	},
	DomainDefault: {
		prefix: "REQ",
		status: "Processed",
		finish: func(result *Result, input Submission) {
			result.Message = "Your request has been processed successfully."
			echo := Submission{entries: input.Entries()}
			result.Input = &echo
		},
	},
}

func profileFor(domain string) profile {
	if p, ok := profiles[domain]; ok {
		return p
	}
	return profiles[DomainDefault]
}

// IDPrefix returns the identifier prefix used for a blueprint domain.
func IDPrefix(domain string) string {
	return profileFor(domain).prefix
}
