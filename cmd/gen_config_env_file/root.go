package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gandalfthegui/confenv/internal/configdoc"
	"github.com/gandalfthegui/confenv/internal/envfile"
	"github.com/gandalfthegui/confenv/internal/envnames"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// run executes the command line args and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	cmd := newRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if help, _ := cmd.Flags().GetBool("help"); help && err == nil {
		// -h/--help prints the usage line and counts as a usage error.
		return 1
	}
	return exitCode(err, stderr)
}

// usageError prints the usage line to stdout and yields exit status 1 with
// cause, if any, reported on stderr.
func usageError(stdout io.Writer, cause error) error {
	fmt.Fprintln(stdout, usageLine)
	return exitErr{code: 1, cause: cause}
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "gen_config_env_file <config_file> <prefix>",
		Short:         "Print the environment variable names that override an INI file",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usageError(stdout, nil)
			}

			log := newLogger(stderr, f.debug)
			defer log.Sync() //nolint:errcheck

			return generate(generateParams{
				configFile: args[0],
				prefix:     args[1],
				format:     f.format.String(),
				color:      useColor(f.color.String(), stdout),
				stdin:      stdin,
				stdout:     stdout,
				log:        log,
			})
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("gen_config_env_file {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(stdout, err)
	})
	cmd.SetHelpFunc(func(*cobra.Command, []string) {
		fmt.Fprintln(stdout, usageLine)
	})

	fs := cmd.Flags()
	// Flags end at the first positional argument, so a prefix may start
	// with "-".
	fs.SetInterspersed(false)
	f.register(fs)
	return cmd
}

type generateParams struct {
	configFile string
	prefix     string
	format     string
	color      bool
	stdin      io.Reader
	stdout     io.Writer
	log        *zap.Logger
}

// generate parses the configuration completely before writing anything, so a
// malformed file produces no output.
func generate(p generateParams) error {
	doc, err := configdoc.Load(p.configFile,
		configdoc.WithLogger(p.log),
		configdoc.WithStdin(p.stdin))
	if err != nil {
		return err
	}

	groups := envnames.Build(doc, p.prefix)
	p.log.Debug("names generated",
		zap.String("prefix", p.prefix),
		zap.Int("sections", len(groups)),
		zap.String("format", p.format))

	switch p.format {
	case formatYAML:
		enc := yaml.NewEncoder(p.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(groups); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(p.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(groups); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return envfile.NewWriter(p.stdout, envfile.WithColor(p.color)).WriteGroups(groups)
	}
}

// useColor resolves the --color mode. In auto mode color is used only when w
// is a terminal.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorAuto:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}

// newLogger returns a console logger writing to w when debug is set, and a
// no-op logger otherwise.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.DebugLevel)
	return zap.New(core)
}
