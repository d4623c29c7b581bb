package css

import (
	"testing"

	"saba/pkg/html"

	"github.com/stretchr/testify/assert"
)

func TestParseInlineStyle_SingleProperty(t *testing.T) {
	decls := ParseInlineStyle("color: red")
	if v, ok := decls.Get("color"); !ok || v != "red" {
		t.Errorf("expected color='red', got '%s'", v)
	}
}

func TestParseInlineStyle_MultipleProperties(t *testing.T) {
	decls := ParseInlineStyle("Color: red; background-color: #00ff00 !important; display:block;")
	assert.Equal(t, Declarations{
		{Property: "color", Value: "red"},
		{Property: "background-color", Value: "#00ff00"},
		{Property: "display", Value: "block"},
	}, decls)
}

func TestParseInlineStyle_RepeatedProperty(t *testing.T) {
	decls := ParseInlineStyle("color: red; color: blue")
	assert.Equal(t, Declarations{{Property: "color", Value: "blue"}}, decls)
}

func TestParseInlineStyle_Empty(t *testing.T) {
	assert.Empty(t, ParseInlineStyle(""))
	assert.Empty(t, ParseInlineStyle("   "))
}

func TestParseInlineStyle_NoTrailingSemicolon(t *testing.T) {
	tests := []struct {
		attr string
		want Declarations
	}{
		{"color:red", Declarations{{Property: "color", Value: "red"}}},
		{"height:30px", Declarations{{Property: "height", Value: "30px"}}},
		{"display:none", Declarations{{Property: "display", Value: "none"}}},
		{"width:100px;height:10px", Declarations{
			{Property: "width", Value: "100px"},
			{Property: "height", Value: "10px"},
		}},
		{"  color: blue  ", Declarations{{Property: "color", Value: "blue"}}},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInlineStyle(tt.attr))
		})
	}
}

func TestComputeStyle_InlineStyleWithoutSemicolon(t *testing.T) {
	doc := html.Parse(`<p style="color:red">x</p>`).Document()
	styles := Resolve(doc, ParseStyleSheet(""))
	assert.Equal(t, Color{R: 255, A: 255}, styles.Get(doc.ElementsByTag("p")[0]).Color)
}
