package script

import (
	"strings"
	"testing"

	"github.com/sufgraph/suf/internal/egraph"
)

func TestRunAllocUnionEqual(t *testing.T) {
	var out strings.Builder
	ip := New(egraph.New(), &out)

	src := `
# allocate two classes and union them
alloc 2 -> $a
alloc 2 -> $b
equal $a $b
union $a $b
equal $a $b
`
	if err := ip.Run(strings.NewReader(src)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if !strings.Contains(lines[2], "equal($a, $b) = false") {
		t.Errorf("expected pre-union equal to be false, got %q", lines[2])
	}
	if !strings.Contains(lines[len(lines)-1], "equal($a, $b) = true") {
		t.Errorf("expected post-union equal to be true, got %q", lines[len(lines)-1])
	}
}

func TestRunAddHashconses(t *testing.T) {
	var out strings.Builder
	ip := New(egraph.New(), &out)

	src := `
alloc 0 -> $a
add foo $a -> $n1
add foo $a -> $n2
`
	if err := ip.Run(strings.NewReader(src)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	n1 := ip.vars["$n1"]
	n2 := ip.vars["$n2"]
	if n1.ID != n2.ID {
		t.Errorf("expected identical add() calls to hashcons to the same id, got %s and %s", n1, n2)
	}
}

func TestRunUndefinedVariableErrors(t *testing.T) {
	ip := New(egraph.New(), &strings.Builder{})
	err := ip.Run(strings.NewReader("find $missing"))
	if err == nil {
		t.Fatal("expected an error for an undefined variable")
	}
}

func TestRunUnknownCommandErrors(t *testing.T) {
	ip := New(egraph.New(), &strings.Builder{})
	err := ip.Run(strings.NewReader("frobnicate $x"))
	if err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}
