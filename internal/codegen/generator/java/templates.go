package java

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Sample file names.
const (
	QueryVOTemplate          = "QueryVO.sample"
	VOTemplate               = "VO.sample"
	ControllerTemplate       = "Controller.sample"
	LoginControllerTemplate  = "LoginController.sample"
	CommonResultTemplate     = "CommonResult.sample"
	UploadControllerTemplate = "UploadController.sample"
)

//go:embed templates/*.sample
var bundled embed.FS

// Templates serves sample files from an optional override directory,
// falling back to the bundled set.
type Templates struct {
	override fs.FS
	bundled  fs.FS
}

// NewTemplates returns the bundled templates, overlaid by dir when dir is set.
func NewTemplates(dir string) (*Templates, error) {
	sub, err := fs.Sub(bundled, "templates")
	if err != nil {
		return nil, fmt.Errorf("bundled templates: %w", err)
	}
	t := &Templates{bundled: sub}
	if dir == "" {
		return t, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", dir)
	}
	t.override = os.DirFS(dir)
	return t, nil
}

// Open implements fs.FS.
func (t *Templates) Open(name string) (fs.File, error) {
	if t.override != nil {
		f, err := t.override.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return t.bundled.Open(name)
}

// ReadLines returns the lines of a sample file without line terminators.
func (t *Templates) ReadLines(name string) ([]string, error) {
	f, err := t.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	return lines, nil
}
