package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jxy/goos/internal/codegen/generator"
)

const (
	defaultInputDir  = "../src/schema"
	defaultOutputDir = "output"
)

type Generate struct {
	InputDir  string           `arg:"" optional:"" name:"input-dir" help:"Directory with <table>.querySchema.js and <table>.dataSchema.js files" default:"../src/schema"`
	OutputDir string           `arg:"" optional:"" name:"output-dir" help:"Directory the Java sources are written to" default:"output"`
	Java      generator.Config `embed:"" prefix:"java."`
	Strict    bool             `help:"Fail when any schema file or field had to be skipped" env:"GOOS_STRICT"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	gen, err := newGenerator(logger, g.InputDir, g.OutputDir, g.Java)
	if err != nil {
		return err
	}
	rep, err := gen.GenAll()
	if err != nil {
		return err
	}
	if g.Strict && rep.Failed() {
		return fmt.Errorf("generation skipped %d file(s) and %d field(s)", len(rep.FileErrs), len(rep.FieldErrs))
	}
	return nil
}

func newGenerator(logger *slog.Logger, inputDir, outputDir string, cfg generator.Config) (*generator.Generator, error) {
	if inputDir == "" {
		inputDir = defaultInputDir
	}
	if outputDir == "" {
		outputDir = defaultOutputDir
	}
	logger.Info("Starting goos code generation", "input", inputDir, "output", outputDir)
	return generator.New(inputDir, outputDir, cfg, logger)
}
