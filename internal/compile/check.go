package compile

import (
	"fmt"
	"os"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
	"github.com/zirkelkoenig/MKConfGen/internal/ir"
	"github.com/zirkelkoenig/MKConfGen/internal/record"
)

// ReportError is a LoadError with its localized message.
type ReportError struct {
	Kind    mkconfgen.ErrorKind `json:"kind" yaml:"kind"`
	Line    int                 `json:"line" yaml:"line"`
	Message string              `json:"message" yaml:"message"`
}

// Report is the outcome of loading one configuration file against a def.
type Report struct {
	Def     string         `json:"def" yaml:"def"`
	File    string         `json:"file" yaml:"file"`
	Errors  []ReportError  `json:"errors" yaml:"errors"`
	Values  map[string]any `json:"values" yaml:"values"`
	Skipped []string       `json:"skipped_validators,omitempty" yaml:"skipped_validators,omitempty"`

	record *record.Record
}

// OK reports whether the configuration loaded without errors.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// ValuesYAML renders the loaded values in declaration order.
func (r *Report) ValuesYAML() ([]byte, error) { return r.record.YAML() }

// SelectDef returns the def called name, or the only def when name is empty.
func SelectDef(f *ir.File, name string) (*ir.Def, error) {
	if name != "" {
		d, ok := f.Def(name)
		if !ok {
			return nil, fmt.Errorf("compile: no definition %q", name)
		}
		return d, nil
	}
	if len(f.Defs) != 1 {
		return nil, fmt.Errorf("compile: schema has %d definitions, select one by name", len(f.Defs))
	}
	return f.Defs[0], nil
}

// CheckConfig loads the configuration file at path against d. Validators
// cannot run outside generated code and are reported as skipped.
func (c *Compiler) CheckConfig(d *ir.Def, path string, consts map[string]int64, opts ...mkconfgen.LoadOpt) (*Report, error) {
	rec, err := record.New(d, record.Options{Consts: consts})
	if err != nil {
		return nil, err
	}
	for _, cb := range rec.Skipped {
		c.logger.Debugw("validator not available, loading without it", "def", d.Name, "callback", cb)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("compile: open configuration: %w", err)
	}
	defer fh.Close()

	errs, err := rec.Load(mkconfgen.NewReaderCursor(fh), opts...)
	if err != nil {
		return nil, fmt.Errorf("compile: %s: %w", path, err)
	}

	rep := &Report{
		Def:     d.Name,
		File:    path,
		Errors:  make([]ReportError, 0, len(errs)),
		Values:  rec.Map(),
		Skipped: rec.Skipped,
		record:  rec,
	}
	for _, e := range errs {
		rep.Errors = append(rep.Errors, ReportError{Kind: e.Kind, Line: e.Line, Message: e.Message()})
		c.logger.Debugw("configuration line rejected", "file", path, "line", e.Line, "kind", e.Kind.String())
	}
	return rep, nil
}
