package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/tbasset/glot/glot"
)

func main() {
	app := &cli.Command{
		Name:  "glot",
		Usage: "explore polyglot programs with tree-sitter",
		Commands: []*cli.Command{
			printCommand(),
			linksCommand(),
			bindingsCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags are shared by every subcommand.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "lang",
			Aliases: []string{"l"},
			Usage:   "host language (python, js, java, c); guessed from the file extension if omitted",
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Usage: "limit on polyglot nesting depth (0 = default)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a glot.yml config file",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "suppress omitted-link warnings",
		},
	}
}

func printCommand() *cli.Command {
	return &cli.Command{
		Name:  "print",
		Usage: "print the polyglot tree of a file",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "file to analyze (required)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit JSON instead of the text outline",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize JSON output",
			},
		),
		Action: runPrint,
	}
}

func runPrint(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	result, err := glot.Render(glot.RenderOptions{
		File:     cmd.String("file"),
		Language: pick(cmd.String("lang"), cfg.Language),
		MaxDepth: pickInt(cmd.Int("max-depth"), cfg.MaxDepth),
	})
	if err != nil {
		return err
	}

	reportDiagnostics(result.Diagnostics, cmd.Bool("quiet"), cfg.Color)
	if cmd.Bool("json") {
		return writeJSON(result, cmd.Bool("compact"))
	}
	fmt.Print(result.Text)
	return nil
}

func linksCommand() *cli.Command {
	return &cli.Command{
		Name:  "links",
		Usage: "list cross-language links",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:  "path",
				Value: ".",
				Usage: "root path to scan",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "single file to analyze",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   runtime.NumCPU(),
				Usage:   "number of parallel workers",
			},
			&cli.Int64Flag{
				Name:  "max-bytes",
				Value: 2 * 1024 * 1024,
				Usage: "skip files larger than this",
			},
		),
		Action: runLinks,
	}
}

func runLinks(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	result, err := glot.Links(glot.LinksOptions{
		Path:     cmd.String("path"),
		File:     cmd.String("file"),
		Language: pick(cmd.String("lang"), cfg.Language),
		Jobs:     cmd.Int("jobs"),
		MaxBytes: cmd.Int64("max-bytes"),
		MaxDepth: pickInt(cmd.Int("max-depth"), cfg.MaxDepth),
	})
	if err != nil {
		return err
	}

	reportDiagnostics(result.Diagnostics, cmd.Bool("quiet"), cfg.Color)
	return writeJSON(result.Links, cmd.Bool("compact"))
}

func bindingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "bindings",
		Usage: "list import/export binding names",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:  "path",
				Value: ".",
				Usage: "root path to scan",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "single file to analyze",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   runtime.NumCPU(),
				Usage:   "number of parallel workers",
			},
			&cli.Int64Flag{
				Name:  "max-bytes",
				Value: 2 * 1024 * 1024,
				Usage: "skip files larger than this",
			},
		),
		Action: runBindings,
	}
}

func runBindings(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	result, err := glot.Bindings(glot.BindingsOptions{
		Path:     cmd.String("path"),
		File:     cmd.String("file"),
		Language: pick(cmd.String("lang"), cfg.Language),
		Jobs:     cmd.Int("jobs"),
		MaxBytes: cmd.Int64("max-bytes"),
		MaxDepth: pickInt(cmd.Int("max-depth"), cfg.MaxDepth),
	})
	if err != nil {
		return err
	}

	reportDiagnostics(result.Diagnostics, cmd.Bool("quiet"), cfg.Color)
	return writeJSON(result.Bindings, cmd.Bool("compact"))
}

func pick(flag, fromConfig string) string {
	if flag != "" {
		return flag
	}
	return fromConfig
}

func pickInt(flag, fromConfig int) int {
	if flag != 0 {
		return flag
	}
	return fromConfig
}
