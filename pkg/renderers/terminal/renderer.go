package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/LyzrCore/spaces/pkg/render"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// Name is the registry name of the terminal renderer.
const Name = "terminal"

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	emphasisStyle = lipgloss.NewStyle().Italic(true)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	ruleStyle     = lipgloss.NewStyle().Faint(true)
)

// Renderer draws a ui.Node tree as styled plain text.
type Renderer struct {
	width int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the terminal renderer.
func New(options ...Option) *Renderer {
	cfg := applyOptions(options)
	return &Renderer{width: cfg.width}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render draws node. Hidden fields have no terminal meaning and are ignored.
func (r *Renderer) Render(ctx context.Context, node ui.Node, opts render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if node == nil {
		return nil, errors.New("terminal renderer: node is required")
	}
	p := &painter{palette: opts.PaletteOrDefault(), width: r.width}
	body, err := p.node(node)
	if err != nil {
		return nil, err
	}
	if !opts.Fragment && opts.Title != "" {
		body = titleStyle.Render(opts.Title) + "\n\n" + body
	}
	return []byte(strings.TrimRight(body, "\n") + "\n"), nil
}

type painter struct {
	palette ui.Palette
	width   int
}

func (p *painter) node(node ui.Node) (string, error) {
	switch n := node.(type) {
	case ui.Container:
		return p.container(n)
	case ui.Heading:
		if n.Level <= 1 {
			return titleStyle.Render(n.Text), nil
		}
		return headingStyle.Render(n.Text), nil
	case ui.Text:
		style := lipgloss.NewStyle().Width(p.width)
		if n.Muted {
			style = style.Inherit(mutedStyle)
		}
		if n.Emphasis {
			style = style.Inherit(emphasisStyle)
		}
		return style.Render(n.Text), nil
	case ui.Markdown:
		return strings.TrimSpace(n.Source), nil
	case ui.Badge:
		return p.badge(&n), nil
	case ui.Table:
		return p.table(n), nil
	case ui.Cards:
		return p.items(n.Items, "■"), nil
	case ui.CompactList:
		return p.items(n.Items, "•"), nil
	case ui.StatGrid:
		return p.stats(n), nil
	case ui.KeyValues:
		return keyValues(n), nil
	case ui.Timeline:
		return timeline(n), nil
	case ui.EmptyState:
		lines := []string{strings.TrimSpace(n.Icon + " " + headingStyle.Render(n.Title))}
		if n.Description != "" {
			lines = append(lines, mutedStyle.Render(n.Description))
		}
		return strings.Join(lines, "\n"), nil
	case ui.Notice:
		return p.notice(n), nil
	case ui.Field:
		return field(n), nil
	case ui.Button:
		return button(n), nil
	case ui.Steps:
		return p.steps(n), nil
	case ui.ResultPanel:
		return p.resultPanel(n), nil
	case ui.Form:
		return p.form(n), nil
	case ui.Links:
		return links(n), nil
	default:
		return "", fmt.Errorf("terminal renderer: unsupported node %T", node)
	}
}

func (p *painter) container(n ui.Container) (string, error) {
	parts := make([]string, 0, len(n.Children)+1)
	if n.Title != "" {
		parts = append(parts, headingStyle.Render(n.Title))
	}
	for _, child := range n.Children {
		out, err := p.node(child)
		if err != nil {
			return "", err
		}
		if out != "" {
			parts = append(parts, out)
		}
	}
	body := strings.Join(parts, "\n\n")
	switch n.Role {
	case ui.RoleHeader:
		return body + "\n" + p.rule(), nil
	case ui.RoleFooter:
		return p.rule() + "\n" + body, nil
	case ui.RoleSidebar:
		return lipgloss.NewStyle().PaddingLeft(2).Render(body), nil
	default:
		return body, nil
	}
}

func (p *painter) rule() string {
	return ruleStyle.Render(strings.Repeat("─", p.width))
}

func (p *painter) badge(b *ui.Badge) string {
	if b == nil || b.Label == "" {
		return ""
	}
	color := b.Color
	if color == "" {
		color = p.palette.StatusColor(b.Label)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render("[" + b.Label + "]")
}

func (p *painter) table(n ui.Table) string {
	headers := make([]string, 0, len(n.Columns))
	for _, col := range n.Columns {
		headers = append(headers, col.Label)
	}
	rows := make([][]string, 0, len(n.Rows))
	for _, row := range n.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell.Badge != nil && cell.Badge.Label != "" {
				cells = append(cells, p.badge(cell.Badge))
				continue
			}
			cells = append(cells, cell.Text)
		}
		rows = append(rows, cells)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ruleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return labelStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

func (p *painter) items(items []ui.Item, bullet string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := bullet + " " + labelStyle.Render(item.Title)
		if item.Subtitle != "" {
			line += "  " + mutedStyle.Render(item.Subtitle)
		}
		if badge := p.badge(item.Badge); badge != "" {
			line += "  " + badge
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p *painter) stats(n ui.StatGrid) string {
	boxes := make([]string, 0, len(n.Stats))
	for _, stat := range n.Stats {
		color := stat.Color
		if color == "" {
			color = p.palette.StatColor("")
		}
		value := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(stat.Value)
		label := strings.TrimSpace(stat.Icon + " " + stat.Label)
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(color)).
			Padding(0, 1).
			Render(value + "\n" + label)
		boxes = append(boxes, box)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func keyValues(n ui.KeyValues) string {
	width := 0
	for _, item := range n.Items {
		width = max(width, lipgloss.Width(item.Label))
	}
	lines := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		label := labelStyle.Width(width).Render(item.Label)
		lines = append(lines, label+"  "+item.Value)
	}
	return strings.Join(lines, "\n")
}

func timeline(n ui.Timeline) string {
	if len(n.Events) == 0 {
		return mutedStyle.Render(n.EmptyText)
	}
	lines := make([]string, 0, len(n.Events))
	for _, event := range n.Events {
		line := labelStyle.Render(event.Time) + "  " + event.Title
		if event.Agent != "" {
			line += mutedStyle.Render(" (" + event.Agent + ")")
		}
		lines = append(lines, line)
		if event.Details != "" {
			lines = append(lines, "       "+mutedStyle.Render(event.Details))
		}
	}
	return strings.Join(lines, "\n")
}

var noticeTokens = map[ui.NoticeLevel]string{
	ui.NoticeInfo:    "accent",
	ui.NoticeSuccess: "status.resolved",
	ui.NoticeWarning: "status.in_progress",
	ui.NoticeError:   "status.open",
}

func (p *painter) notice(n ui.Notice) string {
	color := p.palette.Token(noticeTokens[n.Level])
	tag := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).
		Render("[" + strings.ToUpper(string(n.Level)) + "]")
	parts := []string{tag}
	if n.Title != "" {
		parts = append(parts, labelStyle.Render(n.Title))
	}
	if n.Message != "" {
		parts = append(parts, n.Message)
	}
	return strings.Join(parts, " ")
}

func field(n ui.Field) string {
	line := labelStyle.Render(n.Label) + " " + mutedStyle.Render("("+string(n.Type)+")")
	if len(n.Options) > 0 {
		line += "\n  " + mutedStyle.Render(strings.Join(n.Options, " / "))
	}
	if n.Value != "" {
		line += "\n  " + n.Value
	}
	if n.Error != "" {
		line += "\n  ! " + n.Error
	}
	return line
}

func button(n ui.Button) string {
	style := lipgloss.NewStyle().Bold(n.Variant == "primary")
	return style.Render("[ " + n.Label + " ]")
}

func (p *painter) steps(n ui.Steps) string {
	lines := make([]string, 0, len(n.Steps)+1)
	if n.Title != "" {
		lines = append(lines, headingStyle.Render(n.Title))
	}
	for _, step := range n.Steps {
		marker := "○"
		switch step.Status {
		case ui.StepComplete:
			marker = "✓"
		case ui.StepActive:
			marker = "●"
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.palette.StepColor(step.Status)))
		lines = append(lines, style.Render(marker)+" "+step.Label)
	}
	return strings.Join(lines, "\n")
}

func (p *painter) resultPanel(n ui.ResultPanel) string {
	if !n.Visible {
		return ""
	}
	parts := make([]string, 0, 2)
	if n.Steps != nil {
		parts = append(parts, p.steps(*n.Steps))
	}
	if content := strings.TrimSpace(n.Content); content != "" {
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n\n")
}

func (p *painter) form(n ui.Form) string {
	parts := make([]string, 0, len(n.Fields)+4)
	if n.Title != "" {
		parts = append(parts, headingStyle.Render(n.Title))
	}
	if n.Description != "" {
		parts = append(parts, mutedStyle.Render(n.Description))
	}
	for _, f := range n.Fields {
		parts = append(parts, field(f))
	}
	if n.Submit.Label != "" {
		parts = append(parts, button(n.Submit))
	}
	if result := p.resultPanel(n.Result); result != "" {
		parts = append(parts, result)
	}
	return strings.Join(parts, "\n\n")
}

func links(n ui.Links) string {
	separator := n.Separator
	if separator == "" {
		separator = "|"
	}
	items := make([]string, 0, len(n.Items))
	for _, link := range n.Items {
		switch {
		case link.Current:
			items = append(items, labelStyle.Render(link.Label))
		case link.External && link.URL != "":
			items = append(items, link.Label+" <"+link.URL+">")
		default:
			items = append(items, link.Label)
		}
	}
	return strings.Join(items, " "+separator+" ")
}
