package app

import (
	"strings"

	"github.com/LyzrCore/spaces/pkg/ui"
)

// FooterMarkdown is the footer shown on every app page.
const FooterMarkdown = "**Powered by Lyzr** | [lyzr.space](https://lyzr.space)"

// RenderPage renders the full app page for v: header, sidebar, page
// content, cross-app navigation and footer.
func (a *App) RenderPage(v View) (ui.Node, error) {
	path := v.Path
	if path == "" {
		path = a.HomePath()
	}
	content, err := a.Content(View{Path: path, Item: v.Item, Form: v.Form})
	if err != nil {
		return nil, err
	}

	return ui.Container{Role: ui.RolePage, ID: a.def.ID, Children: []ui.Node{
		a.header(),
		ui.Group(ui.RoleRow,
			a.sidebar(normalizePath(path)),
			ui.Container{Role: ui.RoleMain, ID: "page-" + FormID(path), Children: []ui.Node{content}},
		),
		a.navigation(),
		ui.Group(ui.RoleFooter, ui.Markdown{Source: FooterMarkdown}),
	}}, nil
}

func (a *App) header() ui.Container {
	children := []ui.Node{ui.Heading{Level: 1, Text: a.def.Title}}
	if a.def.Description != "" {
		children = append(children, ui.Text{Text: a.def.Description, Emphasis: true})
	}
	if links := a.headerLinks(); len(links) > 0 {
		children = append(children, ui.Links{Items: links, Separator: "·"})
	}
	return ui.Group(ui.RoleHeader, children...)
}

func (a *App) headerLinks() []ui.Link {
	var links []ui.Link
	add := func(label, url string) {
		if url != "" {
			links = append(links, ui.Link{Label: label, URL: url, External: true})
		}
	}
	add("⭐ GitHub", a.def.GithubURL)
	add("🚀 Lyzr Studio", a.def.StudioURL)
	add("📖 Readme", a.def.ReadmeURL)
	return links
}

func (a *App) sidebar(current string) ui.Node {
	if len(a.def.Sidebar) == 0 {
		return nil
	}
	links := make([]ui.Link, 0, len(a.def.Sidebar))
	for _, item := range a.def.Sidebar {
		path := normalizePath(item.Path)
		links = append(links, ui.Link{
			Label:   strings.TrimSpace(item.Icon + " " + item.Label),
			URL:     a.PageURL(path),
			Current: path == current,
		})
	}
	return ui.Group(ui.RoleSidebar, ui.Links{Items: links, Separator: " "})
}

func (a *App) navigation() ui.Container {
	return ui.Section("All Apps", ui.Links{Items: a.registry.Links(a.def.ID)})
}
