package page

import (
	"sort"

	"github.com/LyzrCore/spaces/pkg/ui"
)

func renderList(cfg ListConfig, data any, rc renderConfig) (ui.Node, error) {
	rows, ok := asRecords(data)
	if !ok {
		return nil, dataErr(KindList, nil, "expected a list of records")
	}

	root := ui.Group(ui.RoleSection, ui.Heading{Level: 2, Text: cfg.Title})
	if len(rows) == 0 {
		root.Children = append(root.Children, ui.EmptyState{
			Icon:        emptyStateIcon,
			Title:       cfg.EmptyTitle,
			Description: cfg.EmptyDescription,
		})
		return root, nil
	}

	var body ui.Node
	switch cfg.Variant {
	case ListCards:
		body = ui.Cards{Items: listItems(cfg, rows, rc.palette, true)}
	case ListCompact:
		body = ui.CompactList{Items: listItems(cfg, rows, rc.palette, false)}
	default:
		body = listTable(cfg, rows, rc.palette)
	}
	root.Children = append(root.Children, body)
	return root, nil
}

func listTable(cfg ListConfig, rows []Record, palette ui.Palette) ui.Table {
	columns := cfg.Columns
	if len(columns) == 0 {
		columns = autoColumns(rows[0])
	}

	table := ui.Table{Columns: make([]ui.Column, 0, len(columns))}
	for _, col := range columns {
		table.Columns = append(table.Columns, ui.Column{
			Key:   col.Key,
			Label: col.Label,
			Width: col.Width,
			Badge: col.Type == ColumnBadge,
		})
	}

	table.Rows = make([][]ui.Cell, 0, len(rows))
	for _, row := range rows {
		cells := make([]ui.Cell, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, tableCell(col, row[col.Key], palette))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func tableCell(col Column, value any, palette ui.Palette) ui.Cell {
	if isZero(value) {
		return ui.Cell{}
	}
	text := Display(value)
	if col.Type != ColumnBadge {
		return ui.Cell{Text: text}
	}
	return ui.Cell{Text: text, Badge: &ui.Badge{Label: text, Color: badgeColor(text, palette)}}
}

// autoColumns derives columns from the first row. Keys are sorted because
// map order carries no meaning.
func autoColumns(first Record) []Column {
	keys := make([]string, 0, len(first))
	for key := range first {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	columns := make([]Column, 0, len(keys))
	for _, key := range keys {
		columns = append(columns, Column{Key: key, Label: TitleCase(key), Type: ColumnText})
	}
	return columns
}

func listItems(cfg ListConfig, rows []Record, palette ui.Palette, withSubtitle bool) []ui.Item {
	items := make([]ui.Item, 0, len(rows))
	for _, row := range rows {
		item := ui.Item{Title: untitled}
		if value, ok := row[cfg.CardTitleKey]; ok {
			item.Title = Display(value)
		}
		if withSubtitle && cfg.CardSubtitleKey != "" {
			item.Subtitle = Display(row[cfg.CardSubtitleKey])
		}
		if cfg.CardBadgeKey != "" {
			if label := Display(row[cfg.CardBadgeKey]); label != "" {
				item.Badge = &ui.Badge{Label: label, Color: badgeColor(label, palette)}
			}
		}
		items = append(items, item)
	}
	return items
}

// badgeColor colors list badges, which may hold either a status or a
// priority such as "P1".
func badgeColor(label string, palette ui.Palette) string {
	neutral := palette.Token("neutral")
	if color := palette.StatusColor(label); color != neutral {
		return color
	}
	return palette.SeverityColor(label)
}
