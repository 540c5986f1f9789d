package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-imgresolve/internal/config"
	"github.com/alnah/go-imgresolve/internal/yamlutil"
)

// htmlTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Image assets</title>
</head>
<body>
%s
</body>
</html>
`

// terminalFormatter is the chroma formatter for --color output.
const terminalFormatter = "terminal256"

// manifestEntry is one logical name and its URL.
type manifestEntry struct {
	Name string
	URL  string
}

// manifest is a listing sorted by name.
type manifest []manifestEntry

// manifestOptions selects how a manifest is written.
type manifestOptions struct {
	format string
	color  bool
	style  string
}

func newManifest(all map[string]string) manifest {
	m := make(manifest, 0, len(all))
	for name, url := range all {
		m = append(m, manifestEntry{Name: name, URL: url})
	}
	sort.Slice(m, func(i, j int) bool { return m[i].Name < m[j].Name })
	return m
}

// asMap returns the manifest as a name-to-URL map.
func (m manifest) asMap() map[string]string {
	out := make(map[string]string, len(m))
	for _, e := range m {
		out[e.Name] = e.URL
	}
	return out
}

// writeManifest renders m to w. Color applies to json and yaml only.
func writeManifest(w io.Writer, m manifest, opts manifestOptions) error {
	style := opts.style
	if style == "" {
		style = config.DefaultStyle
	}

	switch opts.format {
	case "", config.FormatText:
		return writeText(w, m)
	case config.FormatJSON:
		data, err := marshalJSON(m)
		if err != nil {
			return err
		}
		return writeSource(w, data, "json", opts.color, style)
	case config.FormatYAML:
		data, err := yamlutil.MarshalSortedMap(m.asMap())
		if err != nil {
			return err
		}
		return writeSource(w, data, "yaml", opts.color, style)
	case config.FormatMarkdown:
		_, err := io.WriteString(w, markdownTable(m))
		return err
	case config.FormatHTML:
		return writeHTML(w, m, style)
	default:
		return fmt.Errorf("%w: unknown format %q (must be one of %s)", ErrUsage, opts.format, strings.Join(config.Formats, ", "))
	}
}

// writeText prints aligned "name url" lines.
func writeText(w io.Writer, m manifest) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range m {
		fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.URL)
	}
	return tw.Flush()
}

func marshalJSON(m manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m.asMap(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// writeSource writes data, highlighted for a terminal when color is set.
func writeSource(w io.Writer, data []byte, lexer string, color bool, style string) error {
	if !color {
		_, err := w.Write(data)
		return err
	}
	return quick.Highlight(w, string(data), lexer, terminalFormatter, style)
}

// markdownTable renders m as a GFM table with an image preview column.
func markdownTable(m manifest) string {
	var b strings.Builder
	b.WriteString("| Name | URL | Preview |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, e := range m {
		name, url := escapeCell(e.Name), escapeCell(e.URL)
		fmt.Fprintf(&b, "| %s | `%s` | ![%s](<%s>) |\n", name, url, name, url)
	}
	return b.String()
}

// escapeCell keeps pipes from splitting a table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// writeHTML renders the markdown table, followed by the JSON manifest as a
// highlighted code block, into a standalone HTML page.
func writeHTML(w io.Writer, m manifest, style string) error {
	data, err := marshalJSON(m)
	if err != nil {
		return err
	}

	var doc strings.Builder
	doc.WriteString("# Image assets\n\n")
	doc.WriteString(markdownTable(m))
	doc.WriteString("\n## Manifest\n\n```json\n")
	doc.Write(data)
	doc.WriteString("```\n")

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // Inline styles keep the page self-contained
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(doc.String()), &buf); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err = fmt.Fprintf(w, htmlTemplate, buf.String())
	return err
}
