package compile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
	"github.com/zirkelkoenig/MKConfGen/internal/ir"
)

const serverSchema = `MKCONFGEN_FILE_BEGIN
MKCONFGEN_DEF_BEGIN(Server)
	MKCONFGEN_HEADING(Network)
	MKCONFGEN_ITEM_UINT(timeout, 30)
	MKCONFGEN_ITEM_WSTR(name, 16, L"srv")
	MKCONFGEN_ITEM_INT(count, 1)
	MKCONFGEN_VALIDATE(count, validateCount)
	MKCONFGEN_VALIDATE(cuont, validateCount)
MKCONFGEN_DEF_END
MKCONFGEN_FILE_END
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func observed(level zapcore.Level) (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core).Sugar(), logs
}

func TestCompileFile_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "server.mkconf", serverSchema)
	out := filepath.Join(dir, "out")

	logger, logs := observed(zapcore.WarnLevel)
	c := New(logger, Options{Package: "config", OutDir: out, Example: true})
	res, err := c.CompileFile(context.Background(), schema)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "server_gen.go"), res.GoFile)
	assert.Equal(t, []string{"Server"}, res.Defs)
	require.Len(t, res.Examples, 1)

	code, err := os.ReadFile(res.GoFile)
	require.NoError(t, err)
	assert.Contains(t, string(code), "package config")
	assert.Contains(t, string(code), "func LoadServer(")

	example, err := os.ReadFile(res.Examples[0])
	require.NoError(t, err)
	assert.Equal(t, "# Network\ntimeout = 30\nname = \"srv\"\ncount = 1\n", string(example))

	require.Len(t, res.Unbound, 1)
	assert.Equal(t, "cuont", res.Unbound[0].Item)
	warn := logs.FilterMessageSnippet("binding dropped").All()
	require.Len(t, warn, 1)
	assert.Equal(t, "cuont", warn[0].ContextMap()["item"])
	assert.Equal(t, "validator validateCount names unknown item cuont", warn[0].ContextMap()["reason"])
}

func TestCompileFile_ExampleLoadsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "server.mkconf", serverSchema)
	c := New(nil, Options{Package: "config", Example: true})
	res, err := c.CompileFile(context.Background(), schema)
	require.NoError(t, err)

	f, err := c.ParseFile(schema)
	require.NoError(t, err)
	rep, err := c.CheckConfig(f.Defs[0], res.Examples[0], nil)
	require.NoError(t, err)
	assert.True(t, rep.OK(), "errors: %+v", rep.Errors)
	assert.Equal(t, map[string]any{"timeout": uint64(30), "name": "srv", "count": int64(1)}, rep.Values)
	assert.Equal(t, []string{"validateCount"}, rep.Skipped)
}

func TestCompileFile_ErrorCategories(t *testing.T) {
	dir := t.TempDir()
	c := New(nil, Options{Package: "config"})
	ctx := context.Background()

	_, err := c.CompileFile(ctx, filepath.Join(dir, "missing.mkconf"))
	assert.ErrorIs(t, err, ErrUnreadable)

	bad := writeFile(t, dir, "bad.mkconf", "MKCONFGEN_FILE_BEGIN\nMKCONFGEN_DEF_BEGIN(")
	_, err = c.CompileFile(ctx, bad)
	assert.ErrorIs(t, err, ErrSyntax)

	dup := writeFile(t, dir, "dup.mkconf", "MKCONFGEN_FILE_BEGIN MKCONFGEN_DEF_BEGIN(A) MKCONFGEN_ITEM_INT(a, 1) MKCONFGEN_ITEM_INT(a, 1) MKCONFGEN_DEF_END MKCONFGEN_FILE_END")
	_, err = c.CompileFile(ctx, dup)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.CompileFile(ctx, filepath.Join(dir, "missing.mkconf"))
	assert.False(t, errors.Is(err, ErrSyntax))
}

func TestCompileFiles_Concurrent(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a", "b", "c", "d"} {
		src := strings.ReplaceAll(serverSchema, "Server", strings.ToUpper(name)+"Server")
		paths = append(paths, writeFile(t, dir, name+".mkconf", src))
	}
	c := New(nil, Options{Package: "config", Jobs: 2})
	results, err := c.CompileFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, p := range paths {
		assert.Equal(t, p, results[i].Source)
		assert.FileExists(t, results[i].GoFile)
	}

	paths = append(paths, filepath.Join(dir, "nope.mkconf"))
	_, err = c.CompileFiles(context.Background(), paths)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestCompileFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil, Options{}).CompileFile(ctx, "whatever.mkconf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "server.mkconf", serverSchema)
	cfg := writeFile(t, dir, "server.cfg", "timeout = -1\nname = \"ok\"\nnonsense\n")

	c := New(nil, Options{})
	f, err := c.ParseFile(schema)
	require.NoError(t, err)
	d, err := SelectDef(f, "")
	require.NoError(t, err)

	rep, err := c.CheckConfig(d, cfg, nil)
	require.NoError(t, err)
	assert.False(t, rep.OK())
	require.Len(t, rep.Errors, 2)
	assert.Equal(t, mkconfgen.ValueType, rep.Errors[0].Kind)
	assert.Equal(t, mkconfgen.NoValue, rep.Errors[1].Kind)
	assert.Equal(t, 3, rep.Errors[1].Line)
	assert.Equal(t, "ok", rep.Values["name"])

	b, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":"VALUE_TYPE"`)

	y, err := rep.ValuesYAML()
	require.NoError(t, err)
	assert.Contains(t, string(y), "name: ok")

	_, err = SelectDef(f, "Client")
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	c := New(nil, Options{})
	dir := t.TempDir()
	f, err := c.ParseFile(writeFile(t, dir, "server.mkconf", serverSchema))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, f, FormatYAML, nil))
	var back ir.File
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back.Defs, 1)
	assert.Equal(t, ir.KindWStr, back.Defs[0].Items[1].Kind)
	assert.Equal(t, "validateCount", back.Defs[0].Items[2].Validate)

	buf.Reset()
	require.NoError(t, Dump(&buf, f, FormatJSON, nil))
	assert.Contains(t, buf.String(), `"kind": "uint"`)

	buf.Reset()
	require.NoError(t, Dump(&buf, f, FormatJSONSchema, nil))
	assert.Contains(t, buf.String(), `"$schema"`)

	assert.Error(t, Dump(&buf, f, "toml", nil))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "myconf", PackageName(filepath.Join(t.TempDir(), "my-conf")))
	assert.Equal(t, "server", BaseName("/x/y/server.mkconf"))
}
