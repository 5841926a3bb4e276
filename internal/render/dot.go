package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Format is an output format for Render.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatSVG, FormatPNG, FormatJPG:
		return f, nil
	case "jpeg":
		return FormatJPG, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want dot, svg, png or jpg)", s)
	}
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// ToDOT converts a render tree to a Graphviz digraph. Every group becomes a
// cluster subgraph so Graphviz draws it as a box around its members.
func ToDOT(t *Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%s;\n", quote(t.Title))
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  fontsize=20;\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [dir=none];\n")

	c := 0
	for _, g := range t.Groups {
		writeGroup(&buf, g, 1, &c)
	}

	buf.WriteString("\n")
	for _, e := range t.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [minlen=%d];\n", e.From.ID, e.To.ID, e.MinLen)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func groupAttrs(g *Group) []string {
	switch g.Kind {
	case GroupVpc:
		return []string{"style=rounded", "color=\"#33A8FF\"", "penwidth=2"}
	case GroupSubnet:
		if g.Public {
			return []string{"style=\"rounded,filled\"", "fillcolor=\"#E8F5E9\"", "color=\"#10B981\""}
		}
		return []string{"style=\"rounded,filled\"", "fillcolor=\"#E3F2FD\"", "color=\"#6B7280\""}
	default:
		return []string{"style=dashed", "color=\"#EF4444\""}
	}
}

func nodeAttrs(n *Node) []string {
	attrs := []string{"label=" + quote(n.Label)}
	if n.Kind == NodeInstance {
		attrs = append(attrs, "fillcolor=\"#F59E0B\"", "shape=box3d")
	}
	return attrs
}

func writeGroup(buf *bytes.Buffer, g *Group, depth int, c *int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(buf, "%ssubgraph cluster_%d {\n", indent, *c)
	*c++
	fmt.Fprintf(buf, "%s  label=%s;\n", indent, quote(g.Label))
	for _, a := range groupAttrs(g) {
		fmt.Fprintf(buf, "%s  %s;\n", indent, a)
	}
	for _, n := range g.Nodes {
		fmt.Fprintf(buf, "%s  %s [%s];\n", indent, n.ID, strings.Join(nodeAttrs(n), ", "))
	}
	for _, child := range g.Groups {
		writeGroup(buf, child, depth+1, c)
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

// Render writes dot to w in the requested format. FormatDOT writes the
// source unchanged; other formats are laid out by Graphviz.
func Render(ctx context.Context, dot string, format Format, w io.Writer) error {
	if format == FormatDOT {
		_, err := io.WriteString(w, dot)
		return err
	}

	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	case FormatJPG:
		gvFormat = graphviz.JPG
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, gvFormat, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
