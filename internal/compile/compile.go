// Package compile drives schema files through parsing, validation and code
// generation, and writes the results to disk.
package compile

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zirkelkoenig/MKConfGen/i18n"
	"github.com/zirkelkoenig/MKConfGen/internal/dsl"
	"github.com/zirkelkoenig/MKConfGen/internal/gen"
	"github.com/zirkelkoenig/MKConfGen/internal/ir"
)

// Failure categories of a compilation. Returned errors wrap one of them.
var (
	ErrUnreadable = errors.New("schema not readable")
	ErrSyntax     = errors.New("schema syntax error")
	ErrInvalid    = errors.New("schema not valid for code generation")
	ErrWrite      = errors.New("output not written")
)

// GeneratedSuffix is appended to the schema base name to form the Go file name.
const GeneratedSuffix = "_gen.go"

// Options configure a Compiler.
type Options struct {
	// Package is the package clause of generated files. Empty derives it from
	// the output directory name.
	Package string
	// OutDir receives generated files. Empty writes next to each schema.
	OutDir string
	// Example also writes <Def>_example.cfg for every def.
	Example bool
	// Jobs bounds concurrent compilations; values below 1 mean no limit.
	Jobs int
}

// Result describes the files produced for one schema.
type Result struct {
	Source   string       `json:"source" yaml:"source"`
	GoFile   string       `json:"go_file" yaml:"go_file"`
	Examples []string     `json:"examples,omitempty" yaml:"examples,omitempty"`
	Defs     []string     `json:"defs" yaml:"defs"`
	Unbound  []ir.Binding `json:"unbound,omitempty" yaml:"unbound,omitempty"`
}

// Compiler turns schema files into Go sources.
type Compiler struct {
	logger *zap.SugaredLogger
	opts   Options
}

// New returns a Compiler logging through logger.
func New(logger *zap.SugaredLogger, opts Options) *Compiler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Compiler{logger: logger, opts: opts}
}

// ParseFile reads and parses one schema file. Dropped VALIDATE bindings are
// logged as warnings.
func (c *Compiler) ParseFile(path string) (*ir.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer fh.Close()

	f, err := dsl.ParseReader(fh)
	if err != nil {
		if _, ok := dsl.AsSyntaxError(err); ok {
			return nil, fmt.Errorf("%w: %s: %w", ErrSyntax, path, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	c.logger.Debugw("parsed schema", "path", path, "defs", len(f.Defs))
	for _, d := range f.Defs {
		for _, b := range d.Unbound {
			c.logger.Warnw("validator names no earlier item; binding dropped",
				"path", path, "def", d.Name, "item", b.Item, "callback", b.Callback, "line", b.Line,
				"reason", i18n.T("unbound_validator", map[string]string{"callback": b.Callback, "item": b.Item}))
		}
	}
	return f, nil
}

// CompileFile generates the Go file (and optionally the example files) for
// the schema at path.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := c.ParseFile(path)
	if err != nil {
		return nil, err
	}

	dir := c.opts.OutDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	pkg := c.opts.Package
	if pkg == "" {
		pkg = PackageName(dir)
	}

	code, err := gen.RenderFile(gen.File{Package: pkg, Source: filepath.Base(path), Schema: f})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	res := &Result{Source: path, GoFile: filepath.Join(dir, BaseName(path)+GeneratedSuffix)}
	if err := os.WriteFile(res.GoFile, code, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	c.logger.Infow("wrote generated code", "path", res.GoFile, "package", pkg)

	for _, d := range f.Defs {
		res.Defs = append(res.Defs, d.Name)
		res.Unbound = append(res.Unbound, d.Unbound...)
		if !c.opts.Example {
			continue
		}
		ex := filepath.Join(dir, gen.ExampleFileName(d))
		if err := os.WriteFile(ex, gen.RenderExample(d), 0o644); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		c.logger.Infow("wrote example configuration", "path", ex, "def", d.Name)
		res.Examples = append(res.Examples, ex)
	}
	return res, nil
}

// CompileFiles compiles every path concurrently. Results keep the order of
// paths; the first failure cancels the remaining work.
func (c *Compiler) CompileFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if c.opts.Jobs > 0 {
		g.SetLimit(c.opts.Jobs)
	}
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			res, err := c.CompileFile(ctx, p)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BaseName returns the file name of path without directory and extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PackageName derives a package clause from a directory name, falling back
// to "config".
func PackageName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "config"
	}
	name := strings.ToLower(strings.NewReplacer("-", "", ".", "").Replace(filepath.Base(abs)))
	if !token.IsIdentifier(name) || name == "_" {
		return "config"
	}
	return name
}
