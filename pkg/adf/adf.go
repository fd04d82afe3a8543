// Package adf decodes the issue tracker's rich-text document format and
// flattens it to plain text.
package adf

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Kind tags a document node.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindParagraph
	KindHardBreak
	KindBulletList
	KindOrderedList
	KindListItem
)

var kindByType = map[string]Kind{
	"text":        KindText,
	"paragraph":   KindParagraph,
	"hardBreak":   KindHardBreak,
	"bulletList":  KindBulletList,
	"orderedList": KindOrderedList,
	"listItem":    KindListItem,
}

// Node is one element of a rich-text tree. Unknown node types decode as
// KindOther and keep their children.
type Node struct {
	Kind    Kind
	Type    string
	Text    string
	Content []Node
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type    string `json:"type"`
		Text    string `json:"text"`
		Content []Node `json:"content"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	n.Type = wire.Type
	n.Kind = kindByType[wire.Type]
	n.Text = wire.Text
	n.Content = wire.Content
	return nil
}

// Parse decodes a rich-text document.
func Parse(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

const bullet = "• "

var newlineRun = regexp.MustCompile(`\n{3,}`)

type frame struct {
	node  *Node
	depth int
	exit  bool
}

// ExtractText flattens a document depth-first. Paragraphs below the root
// open and close with a newline, hard breaks and lists emit a newline, and
// list items start a bulleted line. Runs of three or more newlines collapse
// to two.
func ExtractText(root *Node) string {
	if root == nil {
		return ""
	}
	return normalize(strings.Join(Fragments(root), ""))
}

// Fragments returns the raw text fragments of a document in document order,
// before whitespace normalization.
func Fragments(root *Node) []string {
	var parts []string
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := top.node

		if top.exit {
			if node.Kind == KindParagraph {
				parts = append(parts, "\n")
			}
			continue
		}

		switch node.Kind {
		case KindParagraph:
			if top.depth > 0 {
				parts = append(parts, "\n")
			}
		case KindText:
			parts = append(parts, node.Text)
		case KindHardBreak:
			parts = append(parts, "\n")
		case KindBulletList, KindOrderedList:
			parts = append(parts, "\n")
		case KindListItem:
			parts = append(parts, "\n"+bullet)
		}

		stack = append(stack, frame{node: node, depth: top.depth, exit: true})
		for i := len(node.Content) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &node.Content[i], depth: top.depth + 1})
		}
	}

	return parts
}

func normalize(s string) string {
	return newlineRun.ReplaceAllString(strings.TrimSpace(s), "\n\n")
}

// Field is a ticket field that holds either a plain string or a rich-text
// document.
type Field struct {
	Plain string
	Doc   *Node
	set   bool
}

// UnmarshalJSON implements json.Unmarshaler. Objects decode as documents,
// strings as plain text, null as unset; any other JSON value is kept as
// its literal text.
func (f *Field) UnmarshalJSON(data []byte) error {
	*f = Field{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	f.set = true
	switch trimmed[0] {
	case '{':
		doc, err := Parse(trimmed)
		if err != nil {
			return err
		}
		f.Doc = doc
	case '"':
		return json.Unmarshal(trimmed, &f.Plain)
	default:
		f.Plain = string(trimmed)
	}
	return nil
}

// NewPlain returns a Field holding plain text.
func NewPlain(s string) Field {
	return Field{Plain: s, set: s != ""}
}

// NewDoc returns a Field holding a document.
func NewDoc(doc *Node) Field {
	return Field{Doc: doc, set: doc != nil}
}

// IsSet reports whether the field was present and non-null.
func (f Field) IsSet() bool {
	return f.set
}

// String returns the field as plain text.
func (f Field) String() string {
	if f.Doc != nil {
		return ExtractText(f.Doc)
	}
	return f.Plain
}
