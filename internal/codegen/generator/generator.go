package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jxy/goos/internal/codegen/generator/java"
	"github.com/jxy/goos/internal/codegen/meta"
	"github.com/jxy/goos/internal/codegen/scanner"
)

// Config holds the generator settings shared by the generate and watch commands.
type Config struct {
	Templates string `help:"Directory with .sample files overriding the bundled Java templates" type:"path" env:"GOOS_TEMPLATES"`
}

// Report summarizes one generation run.
type Report struct {
	Tables     []string // tables whose controller was generated, in order
	Written    []string // every file written
	FieldCount int      // fields rendered into value objects
	FieldErrs  []java.FieldError
	FileErrs   []error // schema files or boilerplate that failed as a whole
}

// Failed reports whether any file or field was skipped.
func (r *Report) Failed() bool {
	return len(r.FileErrs) > 0 || len(r.FieldErrs) > 0
}

type Generator struct {
	inputDir  string
	outputDir string
	logger    *slog.Logger
	java      *java.Generator

	// tables whose controller exists already
	seen map[string]struct{}
}

func New(inputDir, outputDir string, cfg Config, logger *slog.Logger) (*Generator, error) {
	tmpls, err := java.NewTemplates(cfg.Templates)
	if err != nil {
		return nil, err
	}
	return &Generator{
		inputDir:  inputDir,
		outputDir: outputDir,
		logger:    logger,
		java:      java.New(logger, outputDir, tmpls),
		seen:      make(map[string]struct{}),
	}, nil
}

// ScanAll discovers the schema files of the input directory.
func (g *Generator) ScanAll() (*meta.Metadata, error) {
	g.logger.Debug("Scanning schema directory", "dir", g.inputDir)
	files, err := scanner.ScanSchemaDir(g.inputDir)
	if err != nil {
		return nil, err
	}
	md := meta.New(files)
	g.logger.Info("Found schema files", "files", len(md.Files), "tables", len(md.Tables))
	return md, nil
}

// GenAll generates every table of the input directory, table by table in
// first-seen order, followed by the boilerplate classes. Only a missing input or an unusable output directory
// is returned as an error; other failures are logged and reported.
func (g *Generator) GenAll() (*Report, error) {
	if err := g.prepare(); err != nil {
		return nil, err
	}
	md, err := g.ScanAll()
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	for _, table := range md.Tables {
		files := md.FilesFor(table)
		g.logger.Debug("Generating table", "table", table, "files", len(files))
		for _, file := range files {
			g.generateFile(file, rep)
		}
	}

	written, err := g.java.Boilerplate()
	rep.Written = append(rep.Written, written...)
	if err != nil {
		g.logger.Error("Failed to copy boilerplate", "error", err)
		rep.FileErrs = append(rep.FileErrs, err)
	}

	g.logger.Info("Generation complete",
		"tables", len(rep.Tables),
		"files", len(rep.Written),
		"fieldErrors", len(rep.FieldErrs),
		"fileErrors", len(rep.FileErrs))
	return rep, nil
}

// GenerateFile regenerates the value object of a single schema file, and the
// table's controller if this generator has not written it yet.
func (g *Generator) GenerateFile(file scanner.SchemaFile) *Report {
	rep := &Report{}
	if err := g.prepare(); err != nil {
		rep.FileErrs = append(rep.FileErrs, err)
		return rep
	}
	g.generateFile(file, rep)
	return rep
}

func (g *Generator) generateFile(file scanner.SchemaFile, rep *Report) {
	var (
		res *java.FileResult
		err error
	)
	switch file.Kind {
	case scanner.KindQuery:
		res, err = g.java.QueryVO(file)
	case scanner.KindData:
		res, err = g.java.VO(file)
	default:
		err = fmt.Errorf("unknown schema kind %q", file.Kind)
	}
	if err != nil {
		g.logger.Error("Failed to generate value object", "file", file.Path, "kind", file.Kind, "error", err)
		rep.FileErrs = append(rep.FileErrs, fmt.Errorf("%s: %w", file.Path, err))
	} else {
		rep.Written = append(rep.Written, res.Path)
		rep.FieldCount += res.Fields
		rep.FieldErrs = append(rep.FieldErrs, res.Skipped...)
	}

	// the controller only depends on the table name
	if _, ok := g.seen[file.Table]; ok {
		return
	}
	g.seen[file.Table] = struct{}{}
	rep.Tables = append(rep.Tables, file.Table)

	res, err = g.java.Controller(file.Table)
	if err != nil {
		g.logger.Error("Failed to generate controller", "table", file.Table, "error", err)
		rep.FileErrs = append(rep.FileErrs, fmt.Errorf("controller %s: %w", file.Table, err))
		return
	}
	rep.Written = append(rep.Written, res.Path)
}

// prepare checks the input directory and creates the output directory.
func (g *Generator) prepare() error {
	if _, err := os.Stat(g.inputDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("input directory %s does not exist", g.inputDir)
		}
		return fmt.Errorf("stat input directory: %w", err)
	}

	if _, err := os.Stat(g.outputDir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		g.logger.Info("Created output directory", "dir", g.outputDir)
	}
	return nil
}
