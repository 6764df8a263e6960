// Package app provides the entry point for the mkconfgen command-line application.
package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zirkelkoenig/MKConfGen/i18n"
	"github.com/zirkelkoenig/MKConfGen/internal/ir"
)

// Configuration keys shared by flags, environment and .mkconfgen.yaml.
const (
	keyConfig    = "config"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyLang      = "lang"
	keyPackage   = "package"
	keyOutDir    = "out-dir"
	keyExample   = "example"
	keyJobs      = "jobs"
	keyConsts    = "consts"

	envPrefix = "MKCONFGEN"
)

// state is shared by the commands of one root command.
type state struct {
	v      *viper.Viper
	logger *zap.SugaredLogger
}

// NewRootCmd creates a new root command for the mkconfgen CLI.
func NewRootCmd() *cobra.Command {
	st := &state{v: viper.New(), logger: zap.NewNop().Sugar()}

	rootCmd := &cobra.Command{
		Use:   "mkconfgen",
		Short: "Compile configuration schemas into Go loaders",
		Long: `mkconfgen reads schema files written with MKCONFGEN_ tokens and generates,
for every definition, a Go record type with defaults, an Init function and a
Load function reading "key = value" configuration files.

Settings are read from flags, MKCONFGEN_* environment variables and an
optional .mkconfgen.yaml in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd.ErrOrStderr())
		},
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			_ = cmd.Help()
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	pf := rootCmd.PersistentFlags()
	pf.String(keyConfig, "", "path to a configuration file (default ./.mkconfgen.yaml)")
	pf.String(keyLogLevel, "info", "log level: debug, info, warn or error")
	pf.String(keyLogFormat, "console", "log format: console or json")
	pf.String(keyLang, "en", "message language: en or ja")
	st.bind(pf, keyConfig, keyLogLevel, keyLogFormat, keyLang)

	rootCmd.AddCommand(newGenerateCmd(st))
	rootCmd.AddCommand(newCheckCmd(st))
	rootCmd.AddCommand(newDumpCmd(st))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (st *state) bind(fs *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		if err := st.v.BindPFlag(key, fs.Lookup(key)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", key, err))
		}
	}
}

// setup reads the configuration file, then builds the logger.
func (st *state) setup(logOut io.Writer) error {
	v := st.v
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".mkconfgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return usageError(fmt.Errorf("read configuration: %w", err))
		}
	}

	logger, err := newLogger(v.GetString(keyLogLevel), v.GetString(keyLogFormat), logOut)
	if err != nil {
		return usageError(err)
	}
	st.logger = logger
	i18n.SetLanguage(v.GetString(keyLang))
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debugw("configuration loaded", "path", used)
	}
	return nil
}

func newLogger(level, format string, w io.Writer) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", keyLogLevel, level)
	}
	var enc zapcore.Encoder
	switch format {
	case "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("invalid %s %q: must be 'console' or 'json'", keyLogFormat, format)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl)).Sugar(), nil
}

// consts merges the consts table of the configuration with flag values, then
// resolves every symbol the schema refers to. Configuration keys are matched
// case-insensitively since viper folds them.
func (st *state) consts(f *ir.File, flagConsts map[string]int64) (map[string]int64, error) {
	var cfg map[string]int64
	if err := st.v.UnmarshalKey(keyConsts, &cfg); err != nil {
		return nil, usageError(fmt.Errorf("read %s: %w", keyConsts, err))
	}
	out := make(map[string]int64, len(cfg)+len(flagConsts))
	for _, d := range f.Defs {
		for _, it := range d.Items {
			for _, sym := range []string{it.Default, it.Capacity} {
				if v, ok := cfg[strings.ToLower(sym)]; ok && sym != "" {
					out[sym] = v
				}
			}
		}
	}
	for k, v := range flagConsts {
		out[k] = v
	}
	return out, nil
}
