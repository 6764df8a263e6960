package app

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
	"github.com/zirkelkoenig/MKConfGen/i18n"
	"github.com/zirkelkoenig/MKConfGen/internal/compile"
)

func newCheckCmd(st *state) *cobra.Command {
	var (
		defName   string
		strict    bool
		format    string
		printVals bool
		constFlag map[string]int64
		maxKey    int
		maxValue  int
	)
	cmd := &cobra.Command{
		Use:   "check SCHEMA CONFIG",
		Short: "Load a configuration file against a schema and report errors",
		Long: `Check loads CONFIG with the definition of SCHEMA (the only one, or the one
named by --def) exactly like generated code would, and lists every rejected
line. Validator callbacks are Go code and are not run. Symbolic capacities and
defaults resolve through --const or the consts table of .mkconfgen.yaml.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := compile.New(st.logger, compile.Options{})
			f, err := c.ParseFile(args[0])
			if err != nil {
				return generateError(err)
			}
			d, err := compile.SelectDef(f, defName)
			if err != nil {
				return usageError(err)
			}
			consts, err := st.consts(f, constFlag)
			if err != nil {
				return err
			}
			rep, err := c.CheckConfig(d, args[1], consts, mkconfgen.LoadOpt{MaxKeyLength: maxKey, MaxValueLength: maxValue})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				b, err := json.MarshalIndent(rep, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
			case "text":
				for _, e := range rep.Errors {
					fmt.Fprintf(out, "%s:%d: %s: %s\n", rep.File, e.Line, e.Kind, e.Message)
				}
				if printVals {
					b, err := rep.ValuesYAML()
					if err != nil {
						return err
					}
					fmt.Fprint(out, string(b))
				}
			default:
				return usageError(fmt.Errorf("invalid --format %q: must be 'text' or 'json'", format))
			}

			if strict && !rep.OK() {
				return &ExitError{
					Code:    ExitFailure,
					Message: i18n.T("config_errors", map[string]string{"count": strconv.Itoa(len(rep.Errors))}),
				}
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&defName, "def", "", "definition to check against (required when the schema has several)")
	fs.BoolVar(&strict, "strict", true, "exit with status 1 when any line is rejected")
	fs.StringVar(&format, "format", "text", "report format: text or json")
	fs.BoolVar(&printVals, "print", false, "print the loaded values as YAML (text format)")
	fs.StringToInt64Var(&constFlag, "const", nil, "symbolic constant, NAME=VALUE (repeatable)")
	fs.IntVar(&maxKey, "max-key-length", mkconfgen.MaxKeyLength, "longest accepted key")
	fs.IntVar(&maxValue, "max-value-length", mkconfgen.MaxValueLength, "longest accepted value")
	return cmd
}
