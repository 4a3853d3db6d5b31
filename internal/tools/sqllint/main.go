// Command sqllint checks that every inline SQL constant carries a
// `--sql <uuid>` audit marker on its first line, the contract the
// SQLRunner enforces at runtime. Running it in CI catches a missing
// marker before it becomes a 500.
package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	sqlPattern    = regexp.MustCompile(`(?i)^\s*(--sql|select|insert|update|delete|with)\b`)
	markerPattern = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\n`)
)

func main() {
	target := "internal/sqlinline"
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	var bad []string
	err := filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".go" {
			return err
		}
		violations, err := lintFile(path)
		if err != nil {
			return err
		}
		bad = append(bad, violations...)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
		os.Exit(1)
	}
	if len(bad) > 0 {
		fmt.Fprintln(os.Stderr, "sqllint: SQL constants without audit markers:")
		for _, v := range bad {
			fmt.Fprintln(os.Stderr, "  "+v)
		}
		os.Exit(1)
	}
}

func lintFile(path string) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}

	var bad []string
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, value := range vs.Values {
				lit, ok := value.(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					continue
				}
				text, err := strconv.Unquote(lit.Value)
				if err != nil {
					continue
				}
				text = strings.TrimLeft(text, "\n")
				if !sqlPattern.MatchString(text) {
					continue
				}
				if !markerPattern.MatchString(text) {
					pos := fset.Position(lit.Pos())
					bad = append(bad, fmt.Sprintf("%s:%d %s", pos.Filename, pos.Line, vs.Names[i].Name))
				}
			}
		}
	}
	return bad, nil
}
