package page

import (
	"github.com/LyzrCore/spaces/pkg/ui"
)

func renderDetail(cfg DetailConfig, data any, rc renderConfig) (ui.Node, error) {
	record, ok := asRecord(data)
	if !ok {
		return nil, dataErr(KindDetail, nil, "expected a record")
	}
	keys := detailKeys(cfg)
	if !hasAny(record, keys) {
		return nil, dataErr(KindDetail, keys, "record holds none of the configured keys")
	}

	root := ui.Group(ui.RoleSection, detailHeader(cfg, record, rc.palette))
	if cfg.Variant == DetailTimeline {
		root.Children = append(root.Children,
			ui.Heading{Level: 3, Text: activityTimelineHeading},
			timeline(record[cfg.TimelineEventsKey]),
		)
		return root, nil
	}

	for _, section := range cfg.Sections {
		root.Children = append(root.Children, detailSection(section, record))
	}
	return root, nil
}

func detailHeader(cfg DetailConfig, record Record, palette ui.Palette) ui.Node {
	title := untitled
	if value, ok := record[cfg.TitleKey]; ok {
		title = Display(value)
	}
	header := ui.Group(ui.RoleHeader, ui.Heading{Level: 2, Text: title})
	if cfg.SubtitleKey != "" {
		if subtitle := Display(record[cfg.SubtitleKey]); subtitle != "" {
			header.Children = append(header.Children, ui.Text{Text: subtitle, Emphasis: true})
		}
	}

	badges := ui.Group(ui.RoleRow)
	for _, badge := range cfg.Badges {
		label := Display(record[badge.Key])
		if label == "" {
			continue
		}
		badges.Children = append(badges.Children, ui.Badge{
			Label: label,
			Color: palette.BadgeColor(label, ui.BadgeType(badge.Type)),
		})
	}
	if len(badges.Children) > 0 {
		header.Children = append(header.Children, badges)
	}
	return header
}

func detailSection(section SectionConfig, record Record) ui.Node {
	out := ui.Section(section.Title)
	switch section.Type {
	case SectionMarkdown:
		if section.ContentKey == "" {
			return out
		}
		content := Display(record[section.ContentKey])
		if content == "" {
			content = noContent
		}
		out.Children = append(out.Children, ui.Markdown{Source: content})
	case SectionTimeline:
		out.Children = append(out.Children, timeline(record[section.EventsKey]))
	default:
		if len(section.Fields) == 0 {
			return out
		}
		kv := ui.KeyValues{Items: make([]ui.KeyValue, 0, len(section.Fields))}
		for _, field := range section.Fields {
			value := notAvailable
			if raw, ok := record[field.Key]; ok && raw != nil {
				value = Display(raw)
			}
			kv.Items = append(kv.Items, ui.KeyValue{Label: field.Label, Value: value})
		}
		out.Children = append(out.Children, kv)
	}
	return out
}

// timeline accepts events keyed time|timestamp, event|title,
// details|description and agent.
func timeline(raw any) ui.Timeline {
	out := ui.Timeline{EmptyText: noActivity}
	events, ok := asRecords(raw)
	if !ok {
		return out
	}
	for _, event := range events {
		out.Events = append(out.Events, ui.Event{
			Time:    stringOf(event, "time", "timestamp"),
			Title:   stringOf(event, "event", "title"),
			Details: stringOf(event, "details", "description"),
			Agent:   stringOf(event, "agent"),
		})
	}
	return out
}

func detailKeys(cfg DetailConfig) []string {
	keys := []string{cfg.TitleKey}
	if cfg.SubtitleKey != "" {
		keys = append(keys, cfg.SubtitleKey)
	}
	for _, badge := range cfg.Badges {
		keys = append(keys, badge.Key)
	}
	if cfg.Variant == DetailTimeline {
		return append(keys, cfg.TimelineEventsKey)
	}
	for _, section := range cfg.Sections {
		for _, field := range section.Fields {
			keys = append(keys, field.Key)
		}
		switch section.Type {
		case SectionMarkdown:
			if section.ContentKey != "" {
				keys = append(keys, section.ContentKey)
			}
		case SectionTimeline:
			keys = append(keys, section.EventsKey)
		}
	}
	return keys
}

func hasAny(record Record, keys []string) bool {
	for _, key := range keys {
		if _, ok := record[key]; ok {
			return true
		}
	}
	return false
}
