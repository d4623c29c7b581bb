package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_BasicDocument(t *testing.T) {
	doc := Parse("<html><body><p>hi</p></body></html>").Document()

	htmlID := doc.DocumentElement()
	require.NotEqual(t, NoNode, htmlID)
	assert.Equal(t, "html", doc.Node(htmlID).TagName)

	body, ok := doc.GetElementByTag("body")
	require.True(t, ok)
	children := doc.Children(body)
	require.Len(t, children, 1)
	p := doc.Node(children[0])
	assert.Equal(t, "p", p.TagName)

	text := doc.Node(p.FirstChild())
	require.NotNil(t, text)
	assert.Equal(t, TextNode, text.Type)
	assert.Equal(t, "hi", text.Text)
}

func TestParser_Serialize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "explicit structure",
			input: "<html><body><p>hi</p></body></html>",
			want:  "<html><head></head><body><p>hi</p></body></html>",
		},
		{
			name:  "implied html head body",
			input: "<p>hi</p>",
			want:  "<html><head></head><body><p>hi</p></body></html>",
		},
		{
			name:  "paragraphs close each other",
			input: "<p>a<p>b",
			want:  "<html><head></head><body><p>a</p><p>b</p></body></html>",
		},
		{
			name:  "block start tag closes paragraph",
			input: "<p>one<div>two</div>",
			want:  "<html><head></head><body><p>one</p><div>two</div></body></html>",
		},
		{
			name:  "inline does not close paragraph",
			input: "<p>one <a href=\"/x\">two</a></p>",
			want:  "<html><head></head><body><p>one <a href=\"/x\">two</a></p></body></html>",
		},
		{
			name:  "stray end p creates empty paragraph",
			input: "<div></p></div>",
			want:  "<html><head></head><body><div><p></p></div></body></html>",
		},
		{
			name:  "unmatched end tag ignored",
			input: "<div>x</span>y</div>",
			want:  "<html><head></head><body><div>xy</div></body></html>",
		},
		{
			name:  "void element",
			input: "<p>a<br>b</p>",
			want:  "<html><head></head><body><p>a<br>b</p></body></html>",
		},
		{
			name:  "unclosed elements",
			input: "<div><p>text",
			want:  "<html><head></head><body><div><p>text</p></div></body></html>",
		},
		{
			name:  "style in head",
			input: "<style>p > a { color: red; }</style><p>x</p>",
			want:  "<html><head><style>p > a { color: red; }</style></head><body><p>x</p></body></html>",
		},
		{
			name:  "text after body end",
			input: "<html><body>a</body>b</html>",
			want:  "<html><head></head><body>ab</body></html>",
		},
		{
			name:  "character references escaped on output",
			input: "<p>a &lt; b</p>",
			want:  "<html><head></head><body><p>a &lt; b</p></body></html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input).Document()
			assert.Equal(t, tt.want, doc.Serialize(doc.Root()))
		})
	}
}

func TestParser_AdjacentTextMerges(t *testing.T) {
	doc := Parse("<p>a<!-- c -->b</p>").Document()
	p, ok := doc.GetElementByTag("p")
	require.True(t, ok)
	children := doc.Children(p)
	require.Len(t, children, 1)
	assert.Equal(t, "ab", doc.Node(children[0]).Text)
}

func TestParser_VoidElementHasNoChildren(t *testing.T) {
	doc := Parse("<p>a<br>b</p>").Document()
	br, ok := doc.GetElementByTag("br")
	require.True(t, ok)
	assert.Equal(t, NoNode, doc.Node(br).FirstChild())

	p, _ := doc.GetElementByTag("p")
	assert.Len(t, doc.Children(p), 3)
}

func TestParser_Attributes(t *testing.T) {
	doc := Parse(`<a href="/next" class="nav">go</a>`).Document()
	a, ok := doc.GetElementByTag("a")
	require.True(t, ok)

	href, ok := doc.Attribute(a, "href")
	require.True(t, ok)
	assert.Equal(t, "/next", href)

	_, ok = doc.Attribute(a, "id")
	assert.False(t, ok)
}

func TestParser_StyleContent(t *testing.T) {
	doc := Parse(`<html><head><style>body { color: red; }</style></head>
<body><style>p { display: none; }</style><p>x</p></body></html>`).Document()
	assert.Equal(t, "body { color: red; }\np { display: none; }", doc.StyleContent())
}

func TestParser_NoStyle(t *testing.T) {
	doc := Parse("<p>x</p>").Document()
	assert.Equal(t, "", doc.StyleContent())
}

func TestParser_ScriptIsText(t *testing.T) {
	doc := Parse(`<script>if (a < b) document.write("<p>");</script><p>x</p>`).Document()
	assert.Len(t, doc.ElementsByTag("p"), 1)
	script, ok := doc.GetElementByTag("script")
	require.True(t, ok)
	assert.Equal(t, `if (a < b) document.write("<p>");`, doc.TextContent(script))
}

func TestParser_TitleHoldsMarkupAsText(t *testing.T) {
	doc := Parse(`<title>a</b>b</title><p>x</p>`).Document()
	title, ok := doc.GetElementByTag("title")
	require.True(t, ok)
	assert.Equal(t, "a</b>b", doc.TextContent(title))
	assert.Empty(t, doc.ElementsByTag("b"))
	assert.Len(t, doc.ElementsByTag("p"), 1)
}

func TestParser_ParentLinks(t *testing.T) {
	doc := Parse("<ul><li>one</li><li>two</li></ul>").Document()
	items := doc.ElementsByTag("li")
	require.Len(t, items, 2)

	ul, _ := doc.GetElementByTag("ul")
	for _, li := range items {
		assert.Equal(t, ul, doc.Node(li).Parent())
	}
	assert.Equal(t, items[1], doc.Node(items[0]).NextSibling())
	assert.Equal(t, items[0], doc.Node(items[1]).PrevSibling())
	assert.Equal(t, "onetwo", doc.TextContent(ul))
}

func TestParser_EmptyInput(t *testing.T) {
	doc := Parse("").Document()
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, NoNode, doc.DocumentElement())
	assert.Equal(t, "", doc.Serialize(doc.Root()))
}

func TestParser_TruncatedInput(t *testing.T) {
	inputs := []string{"<html><bo", "<p class=\"x", "<style>p{", "<!--", "<p>a &"}
	for _, input := range inputs {
		assert.NotPanics(t, func() { Parse(input) }, input)
	}
}
