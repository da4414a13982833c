package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gocxx/cxxast"
)

type args struct {
	inputPath        *string
	skipFunctionBody *bool
	verbose          *bool
}

func readArgs() *args {
	a := &args{
		inputPath:        flag.String("input", "", "Path to the C++ source file to dump"),
		skipFunctionBody: flag.Bool("skip-function-bodies", false, "Capture function bodies verbatim instead of parsing statements"),
		verbose:          flag.Bool("v", false, "Enable debug logging"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()

	level := slog.LevelInfo
	if *a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *a.inputPath == "" {
		logger.Error("no input file given, pass -input")
		os.Exit(1)
	}

	cfg := cxxast.NewConfig()
	cfg.SetBool("parser.skip_function_bodies", *a.skipFunctionBody)

	logger.Debug("parsing", "path", *a.inputPath)
	_, root, err := cxxast.ParseFile(*a.inputPath, nil, cfg)
	if err != nil {
		logger.Error("parse failed", "path", *a.inputPath, "err", err)
		os.Exit(2)
	}

	if err := cxxast.NewCSTPrinter(os.Stdout).Print(root); err != nil {
		logger.Error("dump failed", "err", err)
		os.Exit(3)
	}
}
