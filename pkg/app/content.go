package app

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/LyzrCore/spaces/pkg/page"
	"github.com/LyzrCore/spaces/pkg/render/template/gotemplate"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// SelectItemText is shown on detail pages with nothing selected.
const SelectItemText = "*Select an item to view details*"

// View describes what to draw for one request.
type View struct {
	// Path is the page path; empty means the home page.
	Path string
	// Item selects a record on detail pages backed by a list.
	Item string
	// Form carries submitted values, errors and the result of a form page.
	Form *page.FormState
}

// FormID is the DOM id prefix of the form on path.
func FormID(path string) string {
	return gotemplate.DOMID(normalizePath(path))
}

// Content renders the body of a page without the app chrome. Broken pages
// and pages whose data cannot be rendered become notices; only an unknown
// path is an error.
func (a *App) Content(v View) (ui.Node, error) {
	path := v.Path
	if path == "" {
		path = a.HomePath()
	}
	p, ok := a.Page(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, normalizePath(path))
	}
	if p.Err != nil {
		return pageNotice(p.Err), nil
	}

	data := a.Data(p)
	if p.Kind() == page.KindDetail {
		record, ok := selectItem(data, p.ItemKey, v.Item)
		if !ok {
			return ui.Markdown{Source: SelectItemText}, nil
		}
		data = record
	}

	opts := []page.RenderOption{
		page.WithPalette(a.palette),
		page.WithFormAction(FormID(p.Path), a.SubmitURL(), a.StreamURL()),
	}
	if v.Form != nil {
		opts = append(opts, page.WithFormState(*v.Form))
	}
	node, err := page.Render(p.Config, data, opts...)
	if err != nil {
		return pageNotice(err), nil
	}
	return node, nil
}

func pageNotice(err error) ui.Notice {
	notice := ui.Notice{Level: ui.NoticeError, Title: "Page unavailable", Message: err.Error()}
	if errors.Is(err, page.ErrMissingData) {
		notice.Level = ui.NoticeWarning
		notice.Title = "No data"
	}
	return notice
}

// selectItem picks the record for a detail page. A single record is used as
// is; a list needs item to match the record's key field.
func selectItem(data any, key, item string) (any, bool) {
	if isEmpty(data) {
		return nil, false
	}
	switch list := data.(type) {
	case []page.Record:
		for _, record := range list {
			if item != "" && page.Display(record[key]) == item {
				return record, true
			}
		}
		return nil, false
	case []any:
		for _, entry := range list {
			record, ok := entry.(map[string]any)
			if ok && item != "" && page.Display(record[key]) == item {
				return record, true
			}
		}
		return nil, false
	}
	return data, true
}

func isEmpty(data any) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}
