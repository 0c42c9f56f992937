package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// SchemaKind tells which value object a schema file produces.
type SchemaKind string

const (
	KindQuery SchemaKind = "query" // <table>.querySchema.js
	KindData  SchemaKind = "data"  // <table>.dataSchema.js
)

var (
	querySchemaPattern = regexp.MustCompile(`^(.*)\.querySchema\.js$`)
	dataSchemaPattern  = regexp.MustCompile(`^(.*)\.dataSchema\.js$`)
)

// SchemaFile is a schema description discovered in the input directory.
type SchemaFile struct {
	Path  string     `json:"path"`  // Full path to the file
	Table string     `json:"table"` // Table name taken from the file name (e.g., "user")
	Kind  SchemaKind `json:"kind"`
}

// MatchSchemaFile reports the table name and kind encoded in a schema file name.
func MatchSchemaFile(name string) (table string, kind SchemaKind, ok bool) {
	if m := querySchemaPattern.FindStringSubmatch(name); m != nil && m[1] != "" {
		return m[1], KindQuery, true
	}
	if m := dataSchemaPattern.FindStringSubmatch(name); m != nil && m[1] != "" {
		return m[1], KindData, true
	}
	return "", "", false
}

// ScanSchemaDir lists the schema files directly inside dir, in name order.
func ScanSchemaDir(dir string) ([]SchemaFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []SchemaFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		table, kind, ok := MatchSchemaFile(entry.Name())
		if !ok {
			continue
		}
		files = append(files, SchemaFile{
			Path:  filepath.Join(dir, entry.Name()),
			Table: table,
			Kind:  kind,
		})
	}
	return files, nil
}
