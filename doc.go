// Package mkconfgen is the runtime side of the mkconfgen configuration
// compiler. It provides:
//
// - A Cursor abstraction over buffered or streamed character input
// - Load, the line oriented `key = value` loader driven by a KeyTable and a ValueParser
// - LoadErrors, an accumulated list of recoverable per-line failures
// - Standard value parsers (ParseInt, ParseUint, ParseFloat, ParseWStr) used by generated code
// - Fields, a table of typed fields for loading without generated code
//
// Design policy:
// - Keep only the runtime API in the root package; the schema parser, the code
// generator and the CLI live under internal/ and cmd/mkconfgen.
// - The loader never decides whether an error is fatal. Malformed lines are reported
// and skipped; only a truncated token at end of input stops it early.
//
// Typical usage of generated code:
//
//	var cfg Server
//	InitServer(&cfg)
//	f, _ := os.Open("server.cfg")
//	errs, err := LoadServer(&cfg, mkconfgen.NewReaderCursor(f))
//
// Without generated code:
//
//	var port uint64
//	fields := mkconfgen.Fields{&mkconfgen.UintField{Name: "port", Dst: &port, Default: 80}}
//	fields.Init()
//	errs, err := fields.Load(mkconfgen.NewStringCursor("port = 8080\n"))
package mkconfgen
