package adf

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) Node { return Node{Kind: KindText, Type: "text", Text: s} }

func paragraph(children ...Node) Node {
	return Node{Kind: KindParagraph, Type: "paragraph", Content: children}
}

func doc(children ...Node) *Node {
	return &Node{Kind: KindOther, Type: "doc", Content: children}
}

func TestExtractText_Paragraphs(t *testing.T) {
	root := doc(
		paragraph(text("Login fails "), text("after upgrade.")),
		paragraph(text("Steps below.")),
	)

	assert.Equal(t, "Login fails after upgrade.\n\nSteps below.", ExtractText(root))
}

func TestExtractText_HardBreakAndLists(t *testing.T) {
	root := doc(
		paragraph(text("Line one"), Node{Kind: KindHardBreak, Type: "hardBreak"}, text("Line two")),
		Node{Kind: KindBulletList, Type: "bulletList", Content: []Node{
			{Kind: KindListItem, Type: "listItem", Content: []Node{paragraph(text("first"))}},
			{Kind: KindListItem, Type: "listItem", Content: []Node{paragraph(text("second"))}},
		}},
	)

	got := ExtractText(root)
	assert.True(t, strings.HasPrefix(got, "Line one\nLine two"), got)
	assert.Contains(t, got, "• \nfirst")
	assert.Contains(t, got, "• \nsecond")
	assert.NotContains(t, got, "\n\n\n")
}

func TestExtractText_UnknownNodesKeepChildren(t *testing.T) {
	root := doc(Node{Kind: KindOther, Type: "panel", Content: []Node{paragraph(text("inside panel"))}})
	assert.Equal(t, "inside panel", ExtractText(root))
}

func TestExtractText_Nil(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))
}

// Text-and-paragraph trees reproduce their text nodes in order and never
// keep a run of three newlines.
func TestExtractText_TextParagraphProperty(t *testing.T) {
	cases := [][][]string{
		{{"a"}},
		{{"a", "b"}, {"c"}},
		{{}, {}, {}, {"after empties"}},
		{{"x"}, {}, {}, {}, {}, {"y", "z"}},
	}

	for _, paragraphs := range cases {
		var children []Node
		var want strings.Builder
		for _, texts := range paragraphs {
			var nodes []Node
			for _, s := range texts {
				nodes = append(nodes, text(s))
				want.WriteString(s)
			}
			children = append(children, paragraph(nodes...))
		}

		got := ExtractText(doc(children...))
		assert.NotContains(t, got, "\n\n\n")
		assert.Equal(t, want.String(), strings.ReplaceAll(got, "\n", ""))
	}
}

func TestParse(t *testing.T) {
	raw := `{"type":"doc","version":1,"content":[
		{"type":"paragraph","content":[{"type":"text","text":"Crash on save"}]},
		{"type":"orderedList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"open file"}]}]}]}
	]}`

	root, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, root.Content, 2)
	assert.Equal(t, KindParagraph, root.Content[0].Kind)
	assert.Equal(t, KindOrderedList, root.Content[1].Kind)
	assert.Equal(t, KindListItem, root.Content[1].Content[0].Kind)

	got := ExtractText(root)
	assert.True(t, strings.HasPrefix(got, "Crash on save"))
	assert.Contains(t, got, "• ")
	assert.Contains(t, got, "open file")
}

func TestField_Unmarshal(t *testing.T) {
	var fields struct {
		Plain  Field `json:"plain"`
		Rich   Field `json:"rich"`
		Null   Field `json:"null"`
		Number Field `json:"number"`
		Absent Field `json:"absent"`
	}
	raw := `{
		"plain": "just text",
		"rich": {"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"rich text"}]}]},
		"null": null,
		"number": 42
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))

	assert.True(t, fields.Plain.IsSet())
	assert.Equal(t, "just text", fields.Plain.String())
	assert.NotNil(t, fields.Rich.Doc)
	assert.Equal(t, "rich text", fields.Rich.String())
	assert.False(t, fields.Null.IsSet())
	assert.Equal(t, "42", fields.Number.String())
	assert.False(t, fields.Absent.IsSet())
}
