package gen

import (
	"bytes"

	"github.com/zirkelkoenig/MKConfGen/internal/ir"
)

// ExampleFileName returns the name of the example configuration of d.
func ExampleFileName(d *ir.Def) string { return d.Name + "_example.cfg" }

// RenderExample renders a configuration file assigning every item of d its
// default. Headings become comment lines preceded by a blank line.
func RenderExample(d *ir.Def) []byte {
	var b bytes.Buffer
	for i, it := range d.Items {
		writeHeadings(&b, d.HeadingsAt(i))
		b.WriteString(it.Name)
		b.WriteString(" = ")
		if it.Kind == ir.KindWStr {
			b.WriteByte('"')
			b.WriteString(it.Default)
			b.WriteByte('"')
		} else {
			b.WriteString(it.Default)
		}
		b.WriteByte('\n')
	}
	writeHeadings(&b, d.HeadingsAt(len(d.Items)))
	return b.Bytes()
}

func writeHeadings(b *bytes.Buffer, headings []string) {
	for _, h := range headings {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("# ")
		b.WriteString(h)
		b.WriteByte('\n')
	}
}
