package page

import (
	"strings"
)

// Kind names a page template.
type Kind string

const (
	KindList      Kind = "list"
	KindDetail    Kind = "detail"
	KindForm      Kind = "form"
	KindDashboard Kind = "dashboard"
)

// Kinds lists every page template.
func Kinds() []Kind {
	return []Kind{KindList, KindDetail, KindForm, KindDashboard}
}

// Config is the closed set of page configurations: ListConfig, DetailConfig,
// FormConfig and DashboardConfig.
type Config interface {
	Kind() Kind
	Validate() error
	sealed()
}

// List variants.
const (
	ListTable   = "table"
	ListCards   = "cards"
	ListCompact = "compact"
)

// Detail variants.
const (
	DetailStandard = "standard"
	DetailTimeline = "timeline"
)

// Form variants. Wizard is accepted and drawn as a standard form.
const (
	FormStandard = "standard"
	FormWizard   = "wizard"
)

// Dashboard variants.
const (
	DashboardMetrics  = "metrics"
	DashboardActivity = "activity"
)

// Section types of a detail page.
const (
	SectionKeyValue = "key_value"
	SectionMarkdown = "markdown"
	SectionTimeline = "timeline"
)

// Column types of a list table.
const (
	ColumnText     = "text"
	ColumnBadge    = "badge"
	ColumnDateTime = "datetime"
)

const (
	defaultListTitle        = "Items"
	defaultCardTitleKey     = "title"
	defaultEmptyTitle       = "No items yet"
	defaultTitleKey         = "title"
	defaultTimelineKey      = "timeline"
	defaultFormTitle        = "Submit"
	defaultSubmitLabel      = "Submit"
	defaultProcessingLabel  = "Processing..."
	defaultTextareaRows     = 3
	defaultDashboardTitle   = "Dashboard"
	defaultRecentItemsKey   = "recent_items"
	defaultRecentItemsTitle = "Recent Items"
	defaultRecentItemsLimit = 5
	defaultStatColor        = "blue"
	defaultBadgeType        = "status"
	untitled                = "Untitled"
	notAvailable            = "N/A"
	noContent               = "*No content available*"
	noActivity              = "No activity yet"
	noRecentItems           = "No recent items"
	activityTimelineHeading = "Activity Timeline"
	emptyStateIcon          = "📭"
)

// Column configures one list table column.
type Column struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
	Width string `yaml:"width,omitempty" json:"width,omitempty"`
	Type  string `yaml:"type,omitempty" json:"type,omitempty"`
}

// ListConfig configures a list page.
type ListConfig struct {
	Variant          string   `yaml:"variant" json:"variant"`
	Title            string   `yaml:"title" json:"title"`
	Columns          []Column `yaml:"columns" json:"columns"`
	CardTitleKey     string   `yaml:"card_title_key" json:"card_title_key"`
	CardSubtitleKey  string   `yaml:"card_subtitle_key" json:"card_subtitle_key"`
	CardBadgeKey     string   `yaml:"card_badge_key" json:"card_badge_key"`
	EmptyTitle       string   `yaml:"empty_title" json:"empty_title"`
	EmptyDescription string   `yaml:"empty_description" json:"empty_description"`
}

// BadgeConfig places a colored badge in a detail header.
type BadgeConfig struct {
	Key  string `yaml:"key" json:"key"`
	Type string `yaml:"type" json:"type"`
}

// FieldRef names one value of a key_value section.
type FieldRef struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

// SectionConfig configures one detail section.
type SectionConfig struct {
	Title      string     `yaml:"title" json:"title"`
	Type       string     `yaml:"type" json:"type"`
	Fields     []FieldRef `yaml:"fields" json:"fields"`
	ContentKey string     `yaml:"content_key" json:"content_key"`
	EventsKey  string     `yaml:"events_key" json:"events_key"`
}

// DetailConfig configures a detail page.
type DetailConfig struct {
	Variant           string          `yaml:"variant" json:"variant"`
	TitleKey          string          `yaml:"title_key" json:"title_key"`
	SubtitleKey       string          `yaml:"subtitle_key" json:"subtitle_key"`
	Badges            []BadgeConfig   `yaml:"badges" json:"badges"`
	Sections          []SectionConfig `yaml:"sections" json:"sections"`
	TimelineEventsKey string          `yaml:"timeline_events_key" json:"timeline_events_key"`
}

// FieldConfig configures one form input.
type FieldConfig struct {
	Key         string   `yaml:"key" json:"key"`
	Label       string   `yaml:"label" json:"label"`
	Type        string   `yaml:"type" json:"type"`
	Placeholder string   `yaml:"placeholder" json:"placeholder"`
	Required    bool     `yaml:"required" json:"required"`
	Options     []string `yaml:"options" json:"options"`
	Rows        int      `yaml:"rows" json:"rows"`
}

// FormConfig configures a form page.
type FormConfig struct {
	Variant         string        `yaml:"variant" json:"variant"`
	Title           string        `yaml:"title" json:"title"`
	Description     string        `yaml:"description" json:"description"`
	Fields          []FieldConfig `yaml:"fields" json:"fields"`
	SubmitLabel     string        `yaml:"submit_label" json:"submit_label"`
	ProcessingLabel string        `yaml:"processing_label" json:"processing_label"`
}

// StatConfig configures one dashboard stat card.
type StatConfig struct {
	Label    string `yaml:"label" json:"label"`
	ValueKey string `yaml:"value_key" json:"value_key"`
	Icon     string `yaml:"icon" json:"icon"`
	Color    string `yaml:"color" json:"color"`
}

// DashboardConfig configures a dashboard page.
type DashboardConfig struct {
	Variant          string       `yaml:"variant" json:"variant"`
	Title            string       `yaml:"title" json:"title"`
	Stats            []StatConfig `yaml:"stats" json:"stats"`
	RecentItemsKey   string       `yaml:"recent_items_key" json:"recent_items_key"`
	RecentItemsTitle string       `yaml:"recent_items_title" json:"recent_items_title"`
	RecentItemsLimit int          `yaml:"recent_items_limit" json:"recent_items_limit"`
}

func (ListConfig) Kind() Kind      { return KindList }
func (DetailConfig) Kind() Kind    { return KindDetail }
func (FormConfig) Kind() Kind      { return KindForm }
func (DashboardConfig) Kind() Kind { return KindDashboard }

func (ListConfig) sealed()      {}
func (DetailConfig) sealed()    {}
func (FormConfig) sealed()      {}
func (DashboardConfig) sealed() {}

// WithDefaults returns a copy with every blank optional field filled in.
func (c ListConfig) WithDefaults() ListConfig {
	switch c.Variant = normalize(c.Variant); c.Variant {
	case ListTable, ListCards, ListCompact:
	default:
		c.Variant = ListTable
	}
	c.Title = fallback(c.Title, defaultListTitle)
	c.CardTitleKey = fallback(c.CardTitleKey, defaultCardTitleKey)
	c.EmptyTitle = fallback(c.EmptyTitle, defaultEmptyTitle)
	columns := make([]Column, 0, len(c.Columns))
	for _, col := range c.Columns {
		col.Key = strings.TrimSpace(col.Key)
		col.Label = fallback(col.Label, TitleCase(col.Key))
		col.Type = fallback(normalize(col.Type), ColumnText)
		columns = append(columns, col)
	}
	c.Columns = columns
	return c
}

// Validate reports a *ConfigError for columns without keys.
func (c ListConfig) Validate() error {
	for i, col := range c.Columns {
		if strings.TrimSpace(col.Key) == "" {
			return configErr(KindList, indexed("columns", i, "key"), "column key is required")
		}
	}
	return nil
}

// WithDefaults returns a copy with every blank optional field filled in.
func (c DetailConfig) WithDefaults() DetailConfig {
	if c.Variant = normalize(c.Variant); c.Variant != DetailTimeline {
		c.Variant = DetailStandard
	}
	c.TitleKey = fallback(c.TitleKey, defaultTitleKey)
	c.TimelineEventsKey = fallback(c.TimelineEventsKey, defaultTimelineKey)
	badges := make([]BadgeConfig, 0, len(c.Badges))
	for _, badge := range c.Badges {
		badge.Type = fallback(normalize(badge.Type), defaultBadgeType)
		badges = append(badges, badge)
	}
	c.Badges = badges
	sections := make([]SectionConfig, 0, len(c.Sections))
	for _, section := range c.Sections {
		section.Type = fallback(normalize(section.Type), SectionKeyValue)
		if section.Type == SectionTimeline {
			section.EventsKey = fallback(section.EventsKey, defaultTimelineKey)
		}
		fields := make([]FieldRef, 0, len(section.Fields))
		for _, field := range section.Fields {
			field.Label = fallback(field.Label, TitleCase(field.Key))
			fields = append(fields, field)
		}
		section.Fields = fields
		sections = append(sections, section)
	}
	c.Sections = sections
	return c
}

// Validate reports a *ConfigError for untitled sections and keyless badges or
// fields.
func (c DetailConfig) Validate() error {
	for i, badge := range c.Badges {
		if strings.TrimSpace(badge.Key) == "" {
			return configErr(KindDetail, indexed("badges", i, "key"), "badge key is required")
		}
	}
	for i, section := range c.Sections {
		if strings.TrimSpace(section.Title) == "" {
			return configErr(KindDetail, indexed("sections", i, "title"), "section title is required")
		}
		for j, field := range section.Fields {
			if strings.TrimSpace(field.Key) == "" {
				return configErr(KindDetail, indexed("sections", i, indexed("fields", j, "key")), "field key is required")
			}
		}
	}
	return nil
}

// WithDefaults returns a copy with every blank optional field filled in.
func (c FormConfig) WithDefaults() FormConfig {
	if c.Variant = normalize(c.Variant); c.Variant != FormWizard {
		c.Variant = FormStandard
	}
	c.Title = fallback(c.Title, defaultFormTitle)
	c.SubmitLabel = fallback(c.SubmitLabel, defaultSubmitLabel)
	c.ProcessingLabel = fallback(c.ProcessingLabel, defaultProcessingLabel)
	fields := make([]FieldConfig, 0, len(c.Fields))
	for _, field := range c.Fields {
		field.Key = strings.TrimSpace(field.Key)
		field.Label = fallback(field.Label, TitleCase(field.Key))
		switch field.Type = normalize(field.Type); field.Type {
		case "text", "textarea", "select", "number":
		default:
			field.Type = "text"
		}
		if field.Rows <= 0 {
			field.Rows = defaultTextareaRows
		}
		field.Options = append([]string(nil), field.Options...)
		fields = append(fields, field)
	}
	c.Fields = fields
	return c
}

// Validate reports a *ConfigError for a form without fields, keyless fields
// and duplicate keys.
func (c FormConfig) Validate() error {
	if len(c.Fields) == 0 {
		return configErr(KindForm, "fields", "at least one field is required")
	}
	seen := make(map[string]struct{}, len(c.Fields))
	for i, field := range c.Fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return configErr(KindForm, indexed("fields", i, "key"), "field key is required")
		}
		if _, dup := seen[key]; dup {
			return configErr(KindForm, indexed("fields", i, "key"), "duplicate field key "+key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// WithDefaults returns a copy with every blank optional field filled in.
func (c DashboardConfig) WithDefaults() DashboardConfig {
	if c.Variant = normalize(c.Variant); c.Variant != DashboardActivity {
		c.Variant = DashboardMetrics
	}
	c.Title = fallback(c.Title, defaultDashboardTitle)
	c.RecentItemsKey = fallback(c.RecentItemsKey, defaultRecentItemsKey)
	c.RecentItemsTitle = fallback(c.RecentItemsTitle, defaultRecentItemsTitle)
	if c.RecentItemsLimit <= 0 {
		c.RecentItemsLimit = defaultRecentItemsLimit
	}
	stats := make([]StatConfig, 0, len(c.Stats))
	for _, stat := range c.Stats {
		stat.Color = fallback(normalize(stat.Color), defaultStatColor)
		stats = append(stats, stat)
	}
	c.Stats = stats
	return c
}

// Validate reports a *ConfigError for stats without a label or value key.
func (c DashboardConfig) Validate() error {
	for i, stat := range c.Stats {
		if strings.TrimSpace(stat.Label) == "" {
			return configErr(KindDashboard, indexed("stats", i, "label"), "stat label is required")
		}
		if strings.TrimSpace(stat.ValueKey) == "" {
			return configErr(KindDashboard, indexed("stats", i, "value_key"), "stat value key is required")
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
