package internalcheck

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const loggingPath = publicPath + "/logging"

// secretFields are CommonParam fields that must only be logged redacted.
var secretFields = map[string]bool{
	"KeyN": true,
	"KeyG": true,
}

func TestNoKeyMaterialInLogs(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, publicPath, modulePath+"/cmd/pois-go")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var findings []string
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok || !isLogCall(pkg.TypesInfo, call) {
					return true
				}
				for _, arg := range call.Args {
					ast.Inspect(arg, func(n ast.Node) bool {
						sel, ok := n.(*ast.SelectorExpr)
						if ok && secretFields[sel.Sel.Name] {
							findings = append(findings, fmt.Sprintf("%s: %s passed to a logger; use logging.Redacted", pkg.Fset.Position(sel.Pos()), sel.Sel.Name))
						}
						return true
					})
				}
				return true
			})
		}
	}

	if len(findings) > 0 {
		t.Fatalf("key logging policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

// isLogCall reports whether call is a method on logging.Logger or
// *slog.Logger.
func isLogCall(info *types.Info, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	fn, ok := info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return false
	}
	switch fn.Pkg().Path() {
	case loggingPath, "log/slog":
		return true
	}
	return false
}
