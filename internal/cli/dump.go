package cli

import (
	"fmt"
	"io"
	"slices"

	"saba/pkg/css"
	"saba/pkg/html"
	"saba/pkg/layout"

	"github.com/spf13/cobra"
)

var dumpSections = []string{"dom", "style", "layout", "paint"}

func newDumpCommand(a *App) *cobra.Command {
	var sections []string
	cmd := &cobra.Command{
		Use:   "dump <url-or-file>",
		Short: "Print the DOM, style sheet, box tree and display items of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range sections {
				if !slices.Contains(dumpSections, s) {
					return fmt.Errorf("unknown section %q, want one of %v", s, dumpSections)
				}
			}
			loaded, err := a.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			page := loaded.Page
			doc := page.Frame().Document()
			for _, s := range sections {
				fmt.Fprintf(w, "== %s ==\n", s)
				switch s {
				case "dom":
					fmt.Fprint(w, doc.Dump())
				case "style":
					writeStyleSheet(w, page.StyleSheet())
				case "layout":
					fmt.Fprint(w, page.LayoutView().Dump(boxLabel(doc)))
				case "paint":
					for _, item := range page.DisplayItems() {
						fmt.Fprintln(w, item)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&sections, "section", "s", dumpSections, "sections to print")
	return cmd
}

func writeStyleSheet(w io.Writer, sheet *css.StyleSheet) {
	for _, rule := range sheet.Rules {
		fmt.Fprintf(w, "%s [%s] {", rule.Selector.Raw, rule.Selector.Kind)
		for _, d := range rule.Declarations {
			fmt.Fprintf(w, " %s: %s;", d.Property, d.Value)
		}
		fmt.Fprintln(w, " }")
	}
}

func boxLabel(doc *html.Document) func(*layout.Box) string {
	return func(b *layout.Box) string {
		n := doc.Node(b.Node)
		if n == nil {
			return ""
		}
		if n.Type == html.TextNode {
			return "#text"
		}
		return "<" + n.TagName + ">"
	}
}
