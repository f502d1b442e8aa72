package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parser represents an HTML parser
type Parser struct {
	// KeepEmptyRows keeps <tr> elements that contain no cells
	KeepEmptyRows bool
}

// Node represents an HTML node in the document tree
type Node struct {
	Type        html.NodeType
	Data        string
	Attr        []html.Attribute
	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node
}

// Document represents a parsed HTML document
type Document struct {
	Root *Node
}

// Table is the text content of one <table>: header cells from <th> rows,
// body rows from the remaining <tr> elements
type Table struct {
	ID      string
	Caption string
	Header  []string
	Rows    [][]string
}

// NewParser creates a new HTML parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses HTML from a string
func (p *Parser) ParseString(content string) (*Document, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses HTML from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	root := convertNode(node, nil)
	return &Document{Root: root}, nil
}

// convertNode converts an html.Node to our Node structure
func convertNode(n *html.Node, parent *Node) *Node {
	if n == nil {
		return nil
	}

	node := &Node{
		Type:   n.Type,
		Data:   n.Data,
		Attr:   n.Attr,
		Parent: parent,
	}

	var lastChild *Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child := convertNode(c, node)
		if node.FirstChild == nil {
			node.FirstChild = child
		}
		if lastChild != nil {
			lastChild.NextSibling = child
			child.PrevSibling = lastChild
		}
		lastChild = child
	}
	node.LastChild = lastChild

	return node
}

// AttrValue returns the value of the named attribute
func (n *Node) AttrValue(key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// FindAll returns every element named tag below n in document order.
// Nested matches are not descended into.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(c *Node) {
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type == html.ElementNode && ch.Data == tag {
				out = append(out, ch)
				continue
			}
			walk(ch)
		}
	}
	walk(n)
	return out
}

// Text returns the whitespace-collapsed text content of n
func (n *Node) Text() string {
	var sb strings.Builder
	var walk func(*Node)
	walk = func(c *Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteByte(' ')
			return
		}
		if c.Type == html.ElementNode && c.Data == "br" {
			sb.WriteByte(' ')
		}
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Tables extracts every top-level <table> in the document
func (p *Parser) Tables(d *Document) []Table {
	var tables []Table
	for _, t := range d.Root.FindAll("table") {
		tables = append(tables, p.table(t))
	}
	return tables
}

func (p *Parser) table(n *Node) Table {
	t := Table{ID: n.AttrValue("id")}
	if caps := n.FindAll("caption"); len(caps) > 0 {
		t.Caption = caps[0].Text()
	}

	for _, tr := range n.FindAll("tr") {
		var cells []string
		allHeader := true
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
				continue
			}
			if c.Data == "td" {
				allHeader = false
			}
			cells = append(cells, c.Text())
		}
		if len(cells) == 0 {
			if p.KeepEmptyRows {
				t.Rows = append(t.Rows, nil)
			}
			continue
		}
		if allHeader && t.Header == nil && len(t.Rows) == 0 {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}

	// Without <th> cells the first row names the columns
	if t.Header == nil && len(t.Rows) > 0 {
		t.Header, t.Rows = t.Rows[0], t.Rows[1:]
	}
	return t
}
