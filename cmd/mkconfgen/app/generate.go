package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zirkelkoenig/MKConfGen/i18n"
	"github.com/zirkelkoenig/MKConfGen/internal/compile"
)

func newGenerateCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate SCHEMA...",
		Short: "Generate Go loaders from schema files",
		Long: `Generate writes <schema>_gen.go for every schema file, next to the schema
or into --out-dir. With --example it also writes <Def>_example.cfg holding
every default.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := compile.New(st.logger, compile.Options{
				Package: st.v.GetString(keyPackage),
				OutDir:  st.v.GetString(keyOutDir),
				Example: st.v.GetBool(keyExample),
				Jobs:    st.v.GetInt(keyJobs),
			})
			results, err := c.CompileFiles(cmd.Context(), args)
			if err != nil {
				return generateError(err)
			}
			for _, res := range results {
				fmt.Fprintln(cmd.OutOrStdout(), res.GoFile)
				for _, ex := range res.Examples {
					fmt.Fprintln(cmd.OutOrStdout(), ex)
				}
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringP(keyPackage, "p", "", "package clause of generated files (default: output directory name)")
	fs.StringP(keyOutDir, "o", "", "output directory (default: next to each schema)")
	fs.Bool(keyExample, false, "also write <Def>_example.cfg files")
	fs.Int(keyJobs, 0, "maximum number of schemas compiled at once (0: no limit)")
	st.bind(fs, keyPackage, keyOutDir, keyExample, keyJobs)
	return cmd
}

func generateError(err error) error {
	var code string
	switch {
	case errors.Is(err, compile.ErrUnreadable):
		code = "unreadable_input"
	case errors.Is(err, compile.ErrSyntax), errors.Is(err, compile.ErrInvalid):
		code = "syntax_error"
	case errors.Is(err, compile.ErrWrite):
		code = "output_not_written"
	default:
		return err
	}
	return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%s: %v", i18n.T(code, nil), err)}
}
