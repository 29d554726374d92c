package apps

import (
	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/page"
	"github.com/LyzrCore/spaces/pkg/registry"
)

const recentIncidentLimit = 5

// Incident status values counted on the service desk dashboard.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// SampleIncidents returns the embedded sample incidents.
func SampleIncidents() ([]page.Record, error) {
	var incidents []page.Record
	if err := loadData("incidents.yaml", &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// DashboardStats counts incidents by status and keeps the first few as
// recent items.
func DashboardStats(incidents []page.Record) page.Record {
	counts := map[string]int{}
	for _, incident := range incidents {
		if status, ok := incident["status"].(string); ok {
			counts[status]++
		}
	}
	recent := incidents[:min(recentIncidentLimit, len(incidents))]
	return page.Record{
		"open_count":        counts[StatusOpen],
		"in_progress_count": counts[StatusInProgress],
		"resolved_count":    counts[StatusResolved],
		"total_count":       len(incidents),
		"recent_items":      append([]page.Record(nil), recent...),
	}
}

func serviceDeskData(_ *registry.Registry, _ options) ([]app.Option, error) {
	incidents, err := SampleIncidents()
	if err != nil {
		return nil, err
	}
	return []app.Option{
		app.WithData("incidents", incidents),
		app.WithData("dashboard", DashboardStats(incidents)),
	}, nil
}
