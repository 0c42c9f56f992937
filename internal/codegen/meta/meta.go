package meta

import "github.com/jxy/goos/internal/codegen/scanner"

// Metadata holds the discovered schema files grouped by table.
// Shared between the generator orchestrator and the Java generator.
type Metadata struct {
	Files  []scanner.SchemaFile // discovery order
	Tables []string             // table names in first-seen order
}

// New groups schema files by table, keeping first-seen order.
func New(files []scanner.SchemaFile) *Metadata {
	md := &Metadata{Files: files}
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if _, ok := seen[f.Table]; ok {
			continue
		}
		seen[f.Table] = struct{}{}
		md.Tables = append(md.Tables, f.Table)
	}
	return md
}

// FilesFor returns the schema files that belong to table.
func (md *Metadata) FilesFor(table string) []scanner.SchemaFile {
	var out []scanner.SchemaFile
	for _, f := range md.Files {
		if f.Table == table {
			out = append(out, f)
		}
	}
	return out
}
