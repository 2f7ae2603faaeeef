package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/nail"

// TestImportRules verifies the layering of the public packages: pkg/token
// imports only stdlib, pkg/core adds pkg/token, and the parser and
// formatter build on those two. Nothing under pkg/ imports internal/.
func TestImportRules(t *testing.T) {
	tests := []struct {
		dir     string
		allowed []string
	}{
		{dir: "../token"},
		{dir: ".", allowed: []string{modulePath + "/pkg/token"}},
		{dir: "../parser", allowed: []string{modulePath + "/pkg/token", modulePath + "/pkg/core"}},
		{dir: "../format", allowed: []string{modulePath + "/pkg/core", "golang.org/x/text/width"}},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(filepath.Clean(tt.dir)), func(t *testing.T) {
			allowed := make(map[string]bool, len(tt.allowed))
			for _, imp := range tt.allowed {
				allowed[imp] = true
			}

			for file, importPath := range nonTestImports(t, tt.dir) {
				// Allow stdlib (no dots in the first path element)
				if !strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
					continue
				}
				if strings.HasPrefix(importPath, modulePath+"/internal/") {
					t.Errorf("%s imports internal package %s", file, importPath)
					continue
				}
				if !allowed[importPath] {
					t.Errorf("%s imports forbidden package: %s", file, importPath)
				}
			}
		})
	}
}

// nonTestImports yields file name and import path pairs for the non-test
// Go files in dir.
func nonTestImports(t *testing.T, dir string) func(yield func(string, string) bool) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	return func(yield func(string, string) bool) {
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
				continue
			}
			if strings.HasSuffix(entry.Name(), "_test.go") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
			if err != nil {
				t.Errorf("Failed to parse %s: %v", path, err)
				continue
			}
			for _, imp := range f.Imports {
				if !yield(entry.Name(), strings.Trim(imp.Path.Value, `"`)) {
					return
				}
			}
		}
	}
}
