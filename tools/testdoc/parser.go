package main

import (
	"cmp"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// TestFunc is a documented test function.
type TestFunc struct {
	Name     string // e.g. "TestUpdate_DryRun"
	File     string // file name
	Line     int
	Summary  string // first doc line without the function name
	Scenario string // text after "Scenario:"
	Expected string // text after "Expected:"
}

// ParseTestFiles walks root and returns the test functions of all
// *_test.go files, sorted by file and line. Directories starting with "."
// or "_" and vendor are skipped.
func ParseTestFiles(root string, integrationOnly bool) ([]TestFunc, error) {
	var tests []TestFunc

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, "_test.go") {
			return nil
		}
		if integrationOnly && !strings.HasSuffix(name, "_integration_test.go") {
			return nil
		}

		found, err := parseTestFile(path)
		if err != nil {
			return err
		}
		tests = append(tests, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(tests, func(a, b TestFunc) int {
		return cmp.Or(cmp.Compare(a.File, b.File), cmp.Compare(a.Line, b.Line))
	})
	return tests, nil
}

func parseTestFile(path string) ([]TestFunc, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var tests []TestFunc
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !strings.HasPrefix(fn.Name.Name, "Test") || !isTestFunction(fn) {
			continue
		}

		tf := TestFunc{
			Name: fn.Name.Name,
			File: filepath.Base(path),
			Line: fset.Position(fn.Pos()).Line,
		}
		if fn.Doc != nil {
			tf.Summary, tf.Scenario, tf.Expected = parseDoc(fn.Doc.Text(), tf.Name)
		}
		tests = append(tests, tf)
	}
	return tests, nil
}

// parseDoc splits a test comment into its summary line and the
// Scenario/Expected paragraphs.
func parseDoc(doc, testName string) (summary, scenario, expected string) {
	var current *string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			current = nil
		case strings.HasPrefix(line, "Scenario:"):
			scenario = strings.TrimSpace(strings.TrimPrefix(line, "Scenario:"))
			current = &scenario
		case strings.HasPrefix(line, "Expected:"):
			expected = strings.TrimSpace(strings.TrimPrefix(line, "Expected:"))
			current = &expected
		case current != nil:
			*current += " " + line
		case summary == "":
			summary = strings.TrimPrefix(line, testName+" ")
		}
	}
	return summary, scenario, expected
}

// isTestFunction checks for a single *testing.T parameter.
func isTestFunction(fn *ast.FuncDecl) bool {
	if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
		return false
	}
	star, ok := fn.Type.Params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == "testing" && sel.Sel.Name == "T"
}
