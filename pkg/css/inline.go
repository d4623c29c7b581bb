package css

import (
	"strings"

	"github.com/aymerick/douceur/parser"
)

// ParseInlineStyle parses the declarations of a style attribute. Input douceur
// rejects falls back to the built-in declaration parser. douceur drops a final
// declaration that has no closing semicolon, so one is always added.
func ParseInlineStyle(styleAttr string) Declarations {
	src := strings.TrimSpace(styleAttr)
	if src == "" {
		return nil
	}
	if !strings.HasSuffix(src, ";") {
		src += ";"
	}
	parsed, err := parser.ParseDeclarations(src)
	if err != nil {
		return ParseDeclarationList(styleAttr)
	}
	var decls Declarations
	for _, d := range parsed {
		property := strings.ToLower(strings.TrimSpace(d.Property))
		value := strings.TrimSpace(d.Value)
		if property == "" || value == "" {
			continue
		}
		decls.Set(property, value)
	}
	return decls
}
