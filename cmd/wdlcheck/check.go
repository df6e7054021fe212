package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stjude-rust-labs/wdlcore/internal/diagnostics"
	"github.com/stjude-rust-labs/wdlcore/internal/pipeline"
)

func newCheckCommand() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "check <pattern>...",
		Short: "Parse and type-check WDL documents",
		Long:  "check expands each argument as a glob (e.g. **/*.wdl) and analyzes every matching file.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no files matched")
			}
			reports := make([]fileReport, 0, len(paths))
			anyErrors := false
			for _, path := range paths {
				rep, err := checkFile(path)
				if err != nil {
					return err
				}
				reports = append(reports, rep)
				if rep.hasErrors {
					anyErrors = true
				}
			}
			if asYAML {
				printYAML(reports)
			} else {
				printHuman(reports)
			}
			if anyErrors {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "emit machine-readable YAML instead of human-readable text")
	return cmd
}

type fileReport struct {
	Path      string             `yaml:"path"`
	Diags     []diagnosticReport `yaml:"diagnostics"`
	hasErrors bool               `yaml:"-"`
}

type diagnosticReport struct {
	Code     string `yaml:"code"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
	Offset   int    `yaml:"offset"`
}

func expandPatterns(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pat := range patterns {
		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pat, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pat); err == nil {
				matches = []string{pat}
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func checkFile(path string) (fileReport, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, fmt.Errorf("reading %s: %w", path, err)
	}
	ctx := pipeline.NewContext(path, string(src))
	ctx = pipeline.Standard().Run(ctx)

	rep := fileReport{Path: path}
	for _, d := range ctx.Diags.All() {
		rep.Diags = append(rep.Diags, diagnosticReport{
			Code:     d.Code,
			Severity: d.Severity.String(),
			Message:  d.Message,
			Offset:   d.PrimarySpan().Start,
		})
		if d.Severity == diagnostics.Error {
			rep.hasErrors = true
		}
	}
	return rep, nil
}

func printYAML(reports []fileReport) {
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	enc.Encode(reports)
}

func printHuman(reports []fileReport) {
	color := isatty.IsTerminal(os.Stdout.Fd())
	for _, rep := range reports {
		if len(rep.Diags) == 0 {
			fmt.Printf("%s: ok\n", rep.Path)
			continue
		}
		for _, d := range rep.Diags {
			label := d.Severity
			if color {
				label = colorize(d.Severity)
			}
			fmt.Printf("%s:%d: %s[%s]: %s\n", rep.Path, d.Offset, label, d.Code, d.Message)
		}
	}
}

func colorize(severity string) string {
	switch severity {
	case "error":
		return "\033[31merror\033[0m"
	case "warning":
		return "\033[33mwarning\033[0m"
	default:
		return severity
	}
}
