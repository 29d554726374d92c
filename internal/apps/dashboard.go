package apps

import (
	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/page"
	"github.com/LyzrCore/spaces/pkg/registry"
)

const (
	appStatusOnline     = "Online"
	systemStatusOK      = "All systems operational"
	statusCheckedLayout = "2006-01-02 15:04:05"
)

// AppDirectory turns the registry into records for the dashboard's app
// cards, in registry order.
func AppDirectory(reg *registry.Registry) []page.Record {
	apps := reg.Apps()
	out := make([]page.Record, 0, len(apps))
	for _, a := range apps {
		out = append(out, page.Record{
			"id":          a.ID,
			"title":       a.Name,
			"name":        a.Name,
			"description": a.Description,
			"url":         a.URL,
			"hf_space":    a.HFSpace,
			"status":      appStatusOnline,
		})
	}
	return out
}

func dashboardData(reg *registry.Registry, o options) ([]app.Option, error) {
	directory := AppDirectory(reg)
	return []app.Option{
		app.WithData("apps", directory),
		app.WithData("overview", page.Record{
			"app_count":     len(directory),
			"healthy_count": len(directory),
			"apps":          directory,
		}),
		app.WithData("status", page.Record{
			"headline":   "System Status",
			"state":      "Resolved",
			"status":     systemStatusOK,
			"checked_at": o.now().UTC().Format(statusCheckedLayout),
		}),
	}, nil
}
