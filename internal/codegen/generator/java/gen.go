package java

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jxy/goos/internal/codegen/common"
	"github.com/jxy/goos/internal/codegen/scanner"
)

// boilerplate files are copied verbatim into the output root.
var boilerplate = []struct {
	template string
	output   string
}{
	{LoginControllerTemplate, "LoginController.java"},
	{CommonResultTemplate, "CommonResult.java"},
	{UploadControllerTemplate, "UploadController.java"},
}

// FieldError records a schema field that could not be rendered.
type FieldError struct {
	Index int
	Key   string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %d (%q): %v", e.Index, e.Key, e.Err)
}

func (e FieldError) Unwrap() error { return e.Err }

// FileResult describes one generated Java file.
type FileResult struct {
	Path    string
	Fields  int          // rendered fields
	Skipped []FieldError // fields left out because they failed
}

type Generator struct {
	logger    *slog.Logger
	outputDir string
	templates *Templates
}

func New(logger *slog.Logger, outputDir string, templates *Templates) *Generator {
	return &Generator{
		logger:    logger,
		outputDir: outputDir,
		templates: templates,
	}
}

// OutputPath returns where the file with the given suffix (e.g., "VO") of a
// table is written.
func (g *Generator) OutputPath(table, suffix string) string {
	return filepath.Join(g.outputDir, table, common.UpperFirst(table)+suffix+".java")
}

// QueryVO renders <Table>QueryVO.java from a query schema file.
func (g *Generator) QueryVO(file scanner.SchemaFile) (*FileResult, error) {
	g.logger.Info("Generating QueryVO", "table", file.Table)
	return g.valueObject(file, QueryVOTemplate, "QueryVO", func(f scanner.Field) (string, bool, error) {
		decl, err := QueryField(f)
		return decl, true, err
	})
}

// VO renders <Table>VO.java from a data schema file.
func (g *Generator) VO(file scanner.SchemaFile) (*FileResult, error) {
	g.logger.Info("Generating VO", "table", file.Table)
	return g.valueObject(file, VOTemplate, "VO", func(f scanner.Field) (string, bool, error) {
		if f.Key == scanner.ActionKey {
			g.logger.Info("Skipping field", "key", scanner.ActionKey)
			return "", false, nil
		}
		decl, err := DataField(f)
		return decl, true, err
	})
}

// fieldFunc renders one field; ok=false leaves the field out without error.
type fieldFunc func(scanner.Field) (decl string, ok bool, err error)

func (g *Generator) valueObject(file scanner.SchemaFile, tmpl, suffix string, render fieldFunc) (*FileResult, error) {
	raws, err := scanner.ParseSchemaFile(file.Path)
	if err != nil {
		return nil, err
	}

	res := &FileResult{Path: g.OutputPath(file.Table, suffix)}
	var fields strings.Builder
	for i, raw := range raws {
		var (
			decl string
			ok   bool
		)
		f, err := scanner.DecodeField(raw)
		if err == nil {
			decl, ok, err = render(f)
		}
		if err != nil {
			g.logger.Error("Failed to parse field", "file", file.Path, "field", string(raw), "error", err)
			res.Skipped = append(res.Skipped, FieldError{Index: i, Key: f.Key, Err: err})
			continue
		}
		if ok {
			fields.WriteString(decl)
			res.Fields++
		}
	}

	params := TableParams(file.Table).With("fields", fields.String())
	lines, err := g.templates.Render(tmpl, params)
	if err != nil {
		return nil, err
	}
	if err := g.write(file.Table, res.Path, lines); err != nil {
		return nil, err
	}
	return res, nil
}

// Controller renders <Table>Controller.java.
func (g *Generator) Controller(table string) (*FileResult, error) {
	g.logger.Info("Generating Controller", "table", table)
	lines, err := g.templates.Render(ControllerTemplate, TableParams(table))
	if err != nil {
		return nil, err
	}
	res := &FileResult{Path: g.OutputPath(table, "Controller")}
	if err := g.write(table, res.Path, lines); err != nil {
		return nil, err
	}
	return res, nil
}

// Boilerplate copies the table independent classes into the output root.
// Every file is attempted; the returned paths are the ones written.
func (g *Generator) Boilerplate() ([]string, error) {
	var (
		written []string
		errs    []error
	)
	for _, b := range boilerplate {
		lines, err := g.templates.ReadLines(b.template)
		if err == nil {
			path := filepath.Join(g.outputDir, b.output)
			if err = common.WriteLines(g.logger, path, lines); err == nil {
				written = append(written, path)
				continue
			}
		}
		errs = append(errs, fmt.Errorf("copy %s: %w", b.output, err))
	}
	if len(errs) > 0 {
		return written, errors.Join(errs...)
	}
	return written, nil
}

func (g *Generator) write(table, path string, lines []string) error {
	if err := os.MkdirAll(filepath.Join(g.outputDir, table), 0o755); err != nil {
		return fmt.Errorf("create table directory: %w", err)
	}
	return common.WriteLines(g.logger, path, lines)
}
