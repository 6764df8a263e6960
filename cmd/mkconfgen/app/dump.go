package app

import (
	"github.com/spf13/cobra"

	"github.com/zirkelkoenig/MKConfGen/internal/compile"
)

func newDumpCmd(st *state) *cobra.Command {
	var (
		format    string
		constFlag map[string]int64
	)
	cmd := &cobra.Command{
		Use:   "dump SCHEMA",
		Short: "Print the parsed schema as YAML, JSON or JSON Schema",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := compile.New(st.logger, compile.Options{})
			f, err := c.ParseFile(args[0])
			if err != nil {
				return generateError(err)
			}
			consts, err := st.consts(f, constFlag)
			if err != nil {
				return err
			}
			return compile.Dump(cmd.OutOrStdout(), f, format, consts)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", compile.FormatYAML, "output format: yaml, json or jsonschema")
	cmd.Flags().StringToInt64Var(&constFlag, "const", nil, "symbolic constant for jsonschema, NAME=VALUE (repeatable)")
	return cmd
}
