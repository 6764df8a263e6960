// Package gen renders Go source and example configuration files from the
// schema model.
package gen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/zirkelkoenig/MKConfGen/internal/ir"
)

// RuntimeImportPath is the package generated code loads through.
const RuntimeImportPath = "github.com/zirkelkoenig/MKConfGen"

//go:embed templates/*.tmpl
var templateFS embed.FS

var fileTemplate = template.Must(template.New("file.go.tmpl").ParseFS(templateFS, "templates/file.go.tmpl"))

// File describes one generated Go source file.
type File struct {
	Package string   // Go package clause
	Source  string   // schema file name quoted in the header; optional
	Schema  *ir.File // parsed schema
}

type fileView struct {
	Source  string
	Head    []string
	Package string
	Runtime string
	Defs    []defView
}

type defView struct {
	Type     string
	Lower    string
	Keys     string
	Offsets  string
	Fields   []fieldView
	Caps     []fieldView
	Trailing []string
}

type fieldView struct {
	Index        int
	Headings     []string
	Field        string
	GoType       string
	Parser       string
	Default      string
	DefaultConst string
	WStr         bool
	Capacity     string
	CapConst     string
	Validate     string
}

var kindTypes = map[ir.ItemKind]struct{ goType, parser string }{
	ir.KindInt:   {"int64", "ParseInt"},
	ir.KindUint:  {"uint64", "ParseUint"},
	ir.KindFloat: {"float64", "ParseFloat"},
	ir.KindWStr:  {"string", "ParseWStr"},
}

// RenderFile renders a gofmt-formatted Go source file declaring, for every
// def, a record type, default and capacity constants, an Init function, a
// value dispatcher and a Load function.
func RenderFile(f File) ([]byte, error) {
	if f.Schema == nil {
		return nil, fmt.Errorf("gen: nil schema")
	}
	if f.Package == "" {
		return nil, fmt.Errorf("gen: missing package name")
	}
	if err := Validate(f.Schema); err != nil {
		return nil, err
	}
	view := fileView{
		Source:  f.Source,
		Head:    commentLines(f.Schema.Head),
		Package: f.Package,
		Runtime: RuntimeImportPath,
	}
	for _, d := range f.Schema.Defs {
		view.Defs = append(view.Defs, buildDefView(d))
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("gen: execute template: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: format generated source (check default and capacity literals): %w", err)
	}
	return out, nil
}

func buildDefView(d *ir.Def) defView {
	typ := upperFirst(d.Name)
	v := defView{Type: typ, Lower: lowerFirst(d.Name)}

	var keys strings.Builder
	offsets := make([]string, 0, len(d.Items)+1)
	for i, it := range d.Items {
		offsets = append(offsets, strconv.Itoa(keys.Len()))
		keys.WriteString(it.Name)

		kt := kindTypes[it.Kind]
		field := GoName(it.Name)
		fv := fieldView{
			Index:        i,
			Headings:     d.HeadingsAt(i),
			Field:        field,
			GoType:       kt.goType,
			Parser:       kt.parser,
			Default:      it.Default,
			DefaultConst: typ + "Default" + field,
			WStr:         it.Kind == ir.KindWStr,
			Capacity:     it.Capacity,
			CapConst:     typ + "Cap" + field,
			Validate:     it.Validate,
		}
		v.Fields = append(v.Fields, fv)
		if fv.WStr {
			v.Caps = append(v.Caps, fv)
		}
	}
	offsets = append(offsets, strconv.Itoa(keys.Len()))
	v.Keys = keys.String()
	v.Offsets = strings.Join(offsets, ", ")
	v.Trailing = d.HeadingsAt(len(d.Items))
	return v
}

// commentLines splits the schema head into comment lines, dropping an
// existing "//" marker.
func commentLines(head string) []string {
	if strings.TrimSpace(head) == "" {
		return nil
	}
	lines := strings.Split(head, "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, " \t")
		if rest, ok := strings.CutPrefix(l, "//"); ok {
			l = strings.TrimPrefix(rest, " ")
		}
		lines[i] = l
	}
	return lines
}
