package internalcheck

import (
	"fmt"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const (
	modulePath  = "github.com/idlespace/pois-go"
	backendPath = modulePath + "/pkg/pois/internal/backend"
	publicPath  = modulePath + "/pkg/pois"
)

func TestOnlyBackendImportsC(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
	}

	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if len(pkgs) == 0 {
		t.Fatal("no packages loaded")
	}

	var findings []string
	fset := token.NewFileSet()
	for _, pkg := range pkgs {
		if pkg.PkgPath == backendPath {
			continue
		}
		for _, name := range pkg.GoFiles {
			file, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", name, err)
			}
			for _, imp := range file.Imports {
				path, _ := strconv.Unquote(imp.Path.Value)
				if path == "C" {
					findings = append(findings, fmt.Sprintf("%s: cgo outside %s", fset.Position(imp.Pos()), backendPath))
				}
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("cgo isolation violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestPublicAPIDoesNotImportUnsafe(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports,
	}

	pkgs, err := packages.Load(cfg, publicPath, publicPath+"/logging", publicPath+"/poistest")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	for _, pkg := range pkgs {
		for path := range pkg.Imports {
			if path == "unsafe" || path == "C" {
				t.Errorf("%s imports %q; native memory belongs in %s", pkg.PkgPath, path, backendPath)
			}
		}
	}
}
