package ui

// Kind names a node type so renderers can dispatch without reflection.
type Kind string

const (
	KindHeading     Kind = "heading"
	KindText        Kind = "text"
	KindMarkdown    Kind = "markdown"
	KindBadge       Kind = "badge"
	KindTable       Kind = "table"
	KindCards       Kind = "cards"
	KindCompactList Kind = "compact_list"
	KindStatGrid    Kind = "stat_grid"
	KindKeyValues   Kind = "key_values"
	KindTimeline    Kind = "timeline"
	KindEmptyState  Kind = "empty_state"
	KindNotice      Kind = "notice"
	KindForm        Kind = "form"
	KindField       Kind = "field"
	KindButton      Kind = "button"
	KindResultPanel Kind = "result_panel"
	KindSteps       Kind = "steps"
	KindLinks       Kind = "links"
	KindContainer   Kind = "container"
)

// Node is a single element of a render tree. The set of implementations is
// closed; renderers switch over the concrete types.
type Node interface {
	Kind() Kind
	isNode()
}

// Heading is a section title. Level follows HTML semantics (1-6).
type Heading struct {
	Level int
	Text  string
}

// Text is a plain paragraph.
type Text struct {
	Text     string
	Muted    bool
	Emphasis bool
}

// Markdown carries markdown source; renderers decide how to draw it.
type Markdown struct {
	Source string
}

// Badge is a short colored label.
type Badge struct {
	Label string
	Color string
}

// Column describes one table column.
type Column struct {
	Key   string
	Label string
	Width string
	Badge bool
}

// Cell is a rendered table value. Badge is set for badge columns with a
// non-empty value.
type Cell struct {
	Text  string
	Badge *Badge
}

// Table is a dense tabular list. Rows keep input order.
type Table struct {
	Columns []Column
	Rows    [][]Cell
}

// Item is one entry in a card grid or compact list.
type Item struct {
	Title    string
	Subtitle string
	Badge    *Badge
}

// Cards is a grid of cards.
type Cards struct {
	Items []Item
}

// CompactList is a single-line-per-item list.
type CompactList struct {
	Items []Item
}

// Stat is one dashboard metric.
type Stat struct {
	Label string
	Value string
	Icon  string
	Color string
}

// StatGrid is a row of stat cards in declared order.
type StatGrid struct {
	Stats []Stat
}

// KeyValue is a labelled value.
type KeyValue struct {
	Label string
	Value string
}

// KeyValues is a two-column grid of labelled values.
type KeyValues struct {
	Items []KeyValue
}

// Event is a single timeline entry.
type Event struct {
	Time    string
	Title   string
	Agent   string
	Details string
}

// Timeline lists events in order. EmptyText is shown when Events is empty.
type Timeline struct {
	Events    []Event
	EmptyText string
}

// EmptyState replaces a list with no rows.
type EmptyState struct {
	Icon        string
	Title       string
	Description string
}

// NoticeLevel grades a Notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a highlighted message box.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

// FieldType selects the input control of a Field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldNumber   FieldType = "number"
)

// Field is a single form input.
type Field struct {
	Key         string
	Label       string
	Type        FieldType
	Placeholder string
	Required    bool
	Options     []string
	Rows        int
	Value       string
	Error       string
}

// Button triggers an action. Action is the form submit target or empty.
type Button struct {
	Label   string
	Variant string
	Action  string
}

// StepStatus is the state of a processing step.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepActive   StepStatus = "active"
	StepComplete StepStatus = "complete"
)

// Step is one line of a processing indicator.
type Step struct {
	Label  string
	Status StepStatus
}

// Steps is a processing indicator.
type Steps struct {
	Title string
	Steps []Step
}

// ResultPanel is the container revealed once a submission completes.
type ResultPanel struct {
	ID              string
	Visible         bool
	ProcessingLabel string
	Steps           *Steps
	Content         string
}

// Form groups fields, a submit button and the result panel.
type Form struct {
	ID          string
	Action      string
	StreamURL   string
	Title       string
	Description string
	Fields      []Field
	Submit      Button
	Result      ResultPanel
}

// Link is a navigation entry. Current marks the page or app being shown.
type Link struct {
	Label    string
	URL      string
	Current  bool
	External bool
}

// Links is an inline list of links.
type Links struct {
	Items     []Link
	Separator string
}

// Role tells renderers what a container represents.
type Role string

const (
	RolePage    Role = "page"
	RoleHeader  Role = "header"
	RoleSidebar Role = "sidebar"
	RoleMain    Role = "main"
	RoleFooter  Role = "footer"
	RoleSection Role = "section"
	RoleRow     Role = "row"
)

// Container groups child nodes.
type Container struct {
	Role     Role
	ID       string
	Title    string
	Children []Node
}

func (Heading) Kind() Kind     { return KindHeading }
func (Text) Kind() Kind        { return KindText }
func (Markdown) Kind() Kind    { return KindMarkdown }
func (Badge) Kind() Kind       { return KindBadge }
func (Table) Kind() Kind       { return KindTable }
func (Cards) Kind() Kind       { return KindCards }
func (CompactList) Kind() Kind { return KindCompactList }
func (StatGrid) Kind() Kind    { return KindStatGrid }
func (KeyValues) Kind() Kind   { return KindKeyValues }
func (Timeline) Kind() Kind    { return KindTimeline }
func (EmptyState) Kind() Kind  { return KindEmptyState }
func (Notice) Kind() Kind      { return KindNotice }
func (Form) Kind() Kind        { return KindForm }
func (Field) Kind() Kind       { return KindField }
func (Button) Kind() Kind      { return KindButton }
func (ResultPanel) Kind() Kind { return KindResultPanel }
func (Steps) Kind() Kind       { return KindSteps }
func (Links) Kind() Kind       { return KindLinks }
func (Container) Kind() Kind   { return KindContainer }

func (Heading) isNode()     {}
func (Text) isNode()        {}
func (Markdown) isNode()    {}
func (Badge) isNode()       {}
func (Table) isNode()       {}
func (Cards) isNode()       {}
func (CompactList) isNode() {}
func (StatGrid) isNode()    {}
func (KeyValues) isNode()   {}
func (Timeline) isNode()    {}
func (EmptyState) isNode()  {}
func (Notice) isNode()      {}
func (Form) isNode()        {}
func (Field) isNode()       {}
func (Button) isNode()      {}
func (ResultPanel) isNode() {}
func (Steps) isNode()       {}
func (Links) isNode()       {}
func (Container) isNode()   {}

// Group wraps children in a container with the given role.
func Group(role Role, children ...Node) Container {
	return Container{Role: role, Children: compact(children)}
}

// Section wraps children in a titled section container.
func Section(title string, children ...Node) Container {
	return Container{Role: RoleSection, Title: title, Children: compact(children)}
}

func compact(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		if node != nil {
			out = append(out, node)
		}
	}
	return out
}

// Walk visits node and its descendants depth first. Returning false from
// visit skips the children of that node.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	switch n := node.(type) {
	case Container:
		for _, child := range n.Children {
			Walk(child, visit)
		}
	case Form:
		for _, field := range n.Fields {
			Walk(field, visit)
		}
		Walk(n.Submit, visit)
		Walk(n.Result, visit)
	case ResultPanel:
		if n.Steps != nil {
			Walk(*n.Steps, visit)
		}
	}
}

// Find returns every node of kind k under root, in walk order.
func Find(root Node, k Kind) []Node {
	var out []Node
	Walk(root, func(n Node) bool {
		if n.Kind() == k {
			out = append(out, n)
		}
		return true
	})
	return out
}
