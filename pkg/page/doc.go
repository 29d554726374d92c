// Package page renders the four page templates (list, detail, form and
// dashboard) into ui render trees.
//
// Configs form a closed set dispatched by Render through one type switch.
// Blank optional fields take documented defaults, so a page never fails for
// missing optional configuration. Render returns a *ConfigError when a
// required config field is absent and a *DataError only when the data lacks
// every key the config relies on; an empty list renders an empty state.
package page
