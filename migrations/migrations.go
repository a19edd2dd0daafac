// Package migrations embeds the SQL schema files.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

// Up returns the names of the up migrations in apply order.
func Up() []string { return list(".up.sql", false) }

// Down returns the names of the down migrations in revert order.
func Down() []string { return list(".down.sql", true) }

// Read returns the contents of one migration file.
func Read(name string) (string, error) {
	b, err := files.ReadFile(name)
	return string(b), err
}

func list(suffix string, reverse bool) []string {
	entries, _ := fs.ReadDir(files, ".")
	var out []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(out)))
	}
	return out
}
