package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/cparse"
	"github.com/shadowdp-go/shadowdp/foundry"
	"github.com/shadowdp-go/shadowdp/transform"
)

func runTransform(args []string) int {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := fs.String("o", "", "output path (default <input>_t.c; not allowed with multiple inputs)")
	epsilon := fs.Bool("set-epsilon-to-one", false, "treat epsilon as the literal constant 1 during cost-term construction")
	goal := fs.Int("goal", 1, "goal multiplier k in assert(__v_epsilon <= epsilon * goal)")
	cfgPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "transform: at least one input file or glob pattern is required")
		return foundry.ExitMissingRequiredArgument
	}

	cfg, err := resolveConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "transform: %v\n", err)
		return exitCodeFor(err)
	}
	if *goal == 1 && cfg.Goal != 0 {
		*goal = cfg.Goal
	}

	inputs, err := expandInputs(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "transform: %v\n", err)
		return foundry.ExitFileNotFound
	}

	logger, _, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "transform: %v\n", err)
		return foundry.ExitFailure
	}
	defer logger.Sync() //nolint:errcheck
	rec := newTelemetry(logger)

	batch := len(inputs) > 1
	if batch && *out != "" {
		fmt.Fprintln(os.Stderr, "transform: -o may not be combined with multiple inputs")
		return exitUsage
	}

	opts := transform.Options{
		SetEpsilonToOne: *epsilon,
		Goal:            *goal,
		Logger:          logger.WithComponent("transform"),
		Telemetry:       rec,
	}

	for _, input := range inputs {
		outPath := *out
		if outPath == "" {
			outPath = defaultOutPath(input)
		}
		if err := transformOne(input, outPath, opts); err != nil {
			fmt.Fprintf(os.Stderr, "transform %s: %v\n", input, err)
			return exitCodeFor(err)
		}
		fmt.Printf("%s -> %s\n", input, outPath)
	}
	return exitSuccess
}

// transformOne parses, transforms, and unparses one source file,
// writing the result to outPath only once the whole pass succeeds —
// transform never produces partial output (SPEC_FULL §7).
func transformOne(inputPath, outPath string, opts transform.Options) error {
	// #nosec G304 -- inputPath is an operator-supplied CLI argument
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	parser := cparse.NewReferenceParser()
	prog, err := parser.Parse(inputPath, string(src))
	if err != nil {
		return err
	}

	if err := transform.Transform(prog, opts); err != nil {
		return err
	}

	return writeProgram(prog, outPath)
}

func writeProgram(prog *cast.Program, outPath string) error {
	unparser := cparse.NewTextUnparser()
	text, err := unparser.Unparse(prog)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(text), 0o644)
}

// defaultOutPath mirrors shadowdp/__main__.py's `<input>_t.c` naming.
func defaultOutPath(inputPath string) string {
	ext := ""
	base := inputPath
	if idx := strings.LastIndexByte(inputPath, '.'); idx >= 0 {
		ext = inputPath[idx:]
		base = inputPath[:idx]
	}
	return base + "_t" + ext
}
