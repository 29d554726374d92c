package page

import (
	"github.com/LyzrCore/spaces/pkg/ui"
)

func renderDashboard(cfg DashboardConfig, data any, rc renderConfig) (ui.Node, error) {
	record, ok := asRecord(data)
	if !ok {
		return nil, dataErr(KindDashboard, nil, "expected a record")
	}
	keys := dashboardKeys(cfg)
	if !hasAny(record, keys) {
		return nil, dataErr(KindDashboard, keys, "record holds none of the configured keys")
	}

	root := ui.Group(ui.RoleSection, ui.Heading{Level: 2, Text: cfg.Title})
	if len(cfg.Stats) > 0 {
		grid := ui.StatGrid{Stats: make([]ui.Stat, 0, len(cfg.Stats))}
		for _, stat := range cfg.Stats {
			value := "0"
			if raw, ok := record[stat.ValueKey]; ok && raw != nil {
				value = Display(raw)
			}
			grid.Stats = append(grid.Stats, ui.Stat{
				Label: stat.Label,
				Value: value,
				Icon:  stat.Icon,
				Color: rc.palette.StatColor(stat.Color),
			})
		}
		root.Children = append(root.Children, grid)
	}

	raw, present := record[cfg.RecentItemsKey]
	if !present {
		return root, nil
	}
	root.Children = append(root.Children, ui.Heading{Level: 3, Text: cfg.RecentItemsTitle})
	items, _ := asRecords(raw)
	if len(items) > cfg.RecentItemsLimit {
		items = items[:cfg.RecentItemsLimit]
	}
	if len(items) == 0 {
		root.Children = append(root.Children, ui.Text{Text: noRecentItems, Muted: true})
		return root, nil
	}

	list := ui.CompactList{Items: make([]ui.Item, 0, len(items))}
	for _, item := range items {
		entry := ui.Item{
			Title:    untitled,
			Subtitle: stringOf(item, "created_at", "created"),
		}
		if value, ok := firstOf(item, "title", "id"); ok {
			entry.Title = Display(value)
		}
		if status := stringOf(item, "status"); status != "" {
			entry.Badge = &ui.Badge{Label: status, Color: rc.palette.StatusColor(status)}
		}
		list.Items = append(list.Items, entry)
	}
	root.Children = append(root.Children, list)
	return root, nil
}

func dashboardKeys(cfg DashboardConfig) []string {
	keys := make([]string, 0, len(cfg.Stats)+1)
	for _, stat := range cfg.Stats {
		keys = append(keys, stat.ValueKey)
	}
	return append(keys, cfg.RecentItemsKey)
}
