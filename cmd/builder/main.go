// Command builder is the CLI front end for the polyglot project build
// orchestrator core: it parses flags, loads the project, and runs the
// engine. Terminal styling and colored output are deliberately left to
// whatever terminal the user has — they are an external concern the core
// does not prescribe.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaptinlin/builder/buildctx"
	"github.com/kaptinlin/builder/engine"
	"github.com/kaptinlin/builder/project"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts buildctx.Options
	var directory string
	var languages []string
	var sets []string
	var verbose int
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:     "builder [flags] TASK...",
		Short:   "A polyglot project build orchestrator",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, taskArgs []string) error {
			opts.Directory = directory
			opts.Languages = languages
			opts.Verbose = verbose
			opts.Tasks = taskArgs
			opts.Sets = parseSets(sets)

			rc, err := execute(opts)
			exitCode = rc
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress informational output")
	rootCmd.Flags().CountVarP(&verbose, "verbose", "v", "increase verbosity (repeatable)")
	rootCmd.Flags().StringVarP(&directory, "directory", "d", ".", "project directory")
	rootCmd.Flags().StringArrayVarP(&languages, "language", "l", nil, "add a language (repeatable)")
	rootCmd.Flags().BoolVarP(&opts.NoRequires, "no-requires", "r", false, "run only the listed tasks, ignoring prerequisites")
	rootCmd.Flags().BoolVarP(&opts.ForceFetch, "force-fetch", "f", false, "bypass the file cache and re-download everything")
	rootCmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "set a variable as name=value (repeatable, comma-separated)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err) //nolint:errcheck
		if exitCode == 0 {
			exitCode = 1
		}
	}

	return exitCode
}

func parseSets(sets []string) map[string]string {
	out := map[string]string{}
	for _, s := range sets {
		for _, clause := range strings.Split(s, ",") {
			name, value, ok := strings.Cut(clause, "=")
			if !ok {
				continue
			}
			out[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
	}
	return out
}

func execute(opts buildctx.Options) (int, error) {
	ctx, err := buildctx.Default(opts)
	if err != nil {
		return 1, err
	}

	proj, err := project.Load(opts.Directory, project.Overrides{
		Languages: opts.Languages,
		Vars:      opts.Sets,
	})
	if err != nil {
		return 1, err
	}

	if proj.HasUnknownLanguages() {
		return 1, fmt.Errorf("unknown language(s): %s", strings.Join(proj.GetUnknownLanguages(), ", "))
	}

	projectCache := project.NewCache(projectParentDir(opts.Directory), project.Overrides{
		Languages: opts.Languages,
		Vars:      opts.Sets,
	})

	eng := engine.New(proj, projectCache, nil)
	return eng.Run(ctx), nil
}

func projectParentDir(directory string) string {
	abs, err := filepath.Abs(directory)
	if err != nil {
		return filepath.Dir(directory)
	}
	return filepath.Dir(abs)
}
