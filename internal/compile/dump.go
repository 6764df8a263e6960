package compile

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/zirkelkoenig/MKConfGen/internal/ir"
	"github.com/zirkelkoenig/MKConfGen/internal/jsonschema"
)

// Dump formats.
const (
	FormatYAML       = "yaml"
	FormatJSON       = "json"
	FormatJSONSchema = "jsonschema"
)

// Dump writes the schema model of f to w. FormatJSONSchema writes one
// document for a single def and an object keyed by def name otherwise.
func Dump(w io.Writer, f *ir.File, format string, consts map[string]int64) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = yaml.Marshal(f)
	case FormatJSON:
		out, err = json.MarshalIndent(f, "", "  ")
		out = append(out, '\n')
	case FormatJSONSchema:
		out, err = dumpJSONSchema(f, consts)
	default:
		return fmt.Errorf("compile: unknown dump format %q (want %s, %s or %s)", format, FormatYAML, FormatJSON, FormatJSONSchema)
	}
	if err != nil {
		return fmt.Errorf("compile: dump %s: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}

func dumpJSONSchema(f *ir.File, consts map[string]int64) ([]byte, error) {
	if len(f.Defs) == 1 {
		s, err := jsonschema.FromDef(f.Defs[0], consts)
		if err != nil {
			return nil, err
		}
		return jsonschema.Marshal(s)
	}
	docs := make(map[string]*jsonschema.Schema, len(f.Defs))
	for _, d := range f.Defs {
		s, err := jsonschema.FromDef(d, consts)
		if err != nil {
			return nil, err
		}
		docs[d.Name] = s
	}
	out, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
