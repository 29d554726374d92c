package orchestrator

import "strings"

type severityTier struct {
	severity Severity
	keywords []string
}

// Checked in order; the first tier with a matching keyword wins.
var severityTiers = []severityTier{
	{SeverityCritical, []string{"down", "outage", "critical", "production", "100%", "all users"}},
	{SeverityHigh, []string{"slow", "degraded", "high cpu", "high memory", "timeout"}},
	{SeverityMedium, []string{"intermittent", "some users", "error rate"}},
}

// Agent names used by the canned timeline. They describe the reference IT
// roster and stay fixed regardless of the blueprint in use.
const (
	agentMonitoring  = "System Monitoring"
	agentTriage      = "Alert Triage"
	agentRootCause   = "Root Cause Analysis"
	agentEscalation  = "Escalation Coordinator"
	agentCoordinator = "Incident Coordinator"
)

var timelinePrefix = []TimelineEvent{
	{Time: "00:00", Event: "Incident reported", Agent: agentMonitoring},
	{Time: "00:02", Event: "Alert triaged and severity assigned", Agent: agentTriage},
	{Time: "00:05", Event: "Investigation started", Agent: agentRootCause},
}

type timelineBranch struct {
	keywords []string
	events   []TimelineEvent
}

// Every matching branch appends, in this order.
var timelineBranches = []timelineBranch{
	{
		keywords: []string{"cpu", "memory"},
		events: []TimelineEvent{
			{Time: "00:08", Event: "Resource exhaustion detected", Agent: agentMonitoring},
			{Time: "00:12", Event: "Scaling remediation initiated", Agent: agentRootCause},
		},
	},
	{
		keywords: []string{"deploy", "release"},
		events: []TimelineEvent{
			{Time: "00:08", Event: "Recent deployment identified", Agent: agentRootCause},
			{Time: "00:10", Event: "Rollback initiated", Agent: agentEscalation},
		},
	},
}

var timelineClosing = TimelineEvent{Time: "00:15", Event: "Resolution in progress", Agent: agentCoordinator}

type textRule struct {
	keywords []string
	text     string
}

var rootCauseRules = []textRule{
	{[]string{"cpu"}, "Root cause identified as CPU exhaustion due to inefficient query processing in the database layer. The query optimizer failed to use the correct index, causing full table scans under high load."},
	{[]string{"memory"}, "Memory leak detected in the application service. The connection pool was not properly releasing connections, leading to gradual memory exhaustion over time."},
	{[]string{"deploy", "release"}, "Issue traced to recent deployment (v2.3.1). A configuration change in the service mesh caused intermittent connection failures between microservices."},
	{[]string{"timeout"}, "Timeout caused by database connection pool exhaustion. The connection limit was reached due to long-running transactions not being properly closed."},
	{[]string{"error"}, "Error spike caused by upstream API rate limiting. The external service began rejecting requests after exceeding the quota limit."},
}

const defaultRootCause = "Investigation identified the root cause as a configuration drift between environments. The production configuration was missing critical environment variables added in the last release."

// The resolution table only distinguishes cpu, memory and deploy.
var resolutionRules = []textRule{
	{[]string{"cpu"}, "1. Added missing database index\n2. Optimized query patterns\n3. Increased connection pool size\n4. Deployed hotfix to production"},
	{[]string{"memory"}, "1. Identified leaking connections\n2. Applied connection pool fix\n3. Restarted affected services\n4. Verified memory stabilization"},
	{[]string{"deploy"}, "1. Initiated rollback to v2.3.0\n2. Verified service connectivity\n3. Confirmed user impact resolved\n4. Scheduled hotfix for configuration issue"},
}

const defaultResolution = "1. Identified affected components\n2. Applied configuration fix\n3. Verified system stability\n4. Confirmed resolution with monitoring"

var defaultRecommendations = []string{
	"Monitor system metrics for the next 24 hours",
	"Schedule post-incident review",
	"Update runbook with findings",
}

// DetermineSeverity grades lowercased text against the ordered keyword tiers.
func DetermineSeverity(text string) Severity {
	for _, tier := range severityTiers {
		if containsAny(text, tier.keywords) {
			return tier.severity
		}
	}
	return SeverityLow
}

// BuildTimeline returns the canned timeline for lowercased text: three fixed
// opening events, any matching optional pairs, then the closing event.
func BuildTimeline(text string) []TimelineEvent {
	events := make([]TimelineEvent, 0, len(timelinePrefix)+5)
	events = append(events, timelinePrefix...)
	for _, branch := range timelineBranches {
		if containsAny(text, branch.keywords) {
			events = append(events, branch.events...)
		}
	}
	return append(events, timelineClosing)
}

// RootCause picks the root-cause narrative for lowercased text.
func RootCause(text string) string {
	return firstRule(text, rootCauseRules, defaultRootCause)
}

// Resolution picks the resolution steps for lowercased text.
func Resolution(text string) string {
	return firstRule(text, resolutionRules, defaultResolution)
}

func firstRule(text string, rules []textRule, fallback string) string {
	for _, rule := range rules {
		if containsAny(text, rule.keywords) {
			return rule.text
		}
	}
	return fallback
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
