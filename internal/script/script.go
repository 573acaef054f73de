// Package script implements a small line-oriented command language for
// driving an e-graph interactively or from a file, in the spirit of
// the scripted smoke tests the algorithm was originally exercised
// with: allocate a class, union two applied ids, ask whether two
// applied ids are equal.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sufgraph/suf/internal/egraph"
	"github.com/sufgraph/suf/internal/slot"
)

// Interpreter executes script commands against a single e-graph,
// printing one line of output per command to out.
type Interpreter struct {
	eg   *egraph.EGraph
	out  io.Writer
	vars map[string]slot.AppliedId
}

// New returns an interpreter bound to the given e-graph. Output is
// written to out as commands execute.
func New(eg *egraph.EGraph, out io.Writer) *Interpreter {
	return &Interpreter{eg: eg, out: out, vars: make(map[string]slot.AppliedId)}
}

// Run executes every non-blank, non-comment line of src in order,
// stopping at the first error.
func (ip *Interpreter) Run(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ip.exec(line); err != nil {
			return fmt.Errorf("line %d: %q: %w", lineNo, line, err)
		}
	}
	return scanner.Err()
}

// exec dispatches a single command line. Supported forms:
//
//	alloc <arity> -> $name
//	find $name
//	union $name $name
//	equal $name $name
//	add <symbol> $name ... -> $name
func (ip *Interpreter) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "alloc":
		if len(fields) != 4 || fields[2] != "->" {
			return fmt.Errorf("usage: alloc <arity> -> $name")
		}
		arity, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid arity %q: %w", fields[1], err)
		}
		id := ip.eg.SUF().Alloc(arity)
		applied := slot.New(id, slot.Identity(arity)...)
		if err := ip.bind(fields[3], applied); err != nil {
			return err
		}
		fmt.Fprintf(ip.out, "%s = %s\n", fields[3], applied)
		return nil

	case "find":
		if len(fields) != 2 {
			return fmt.Errorf("usage: find $name")
		}
		x, err := ip.resolve(fields[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(ip.out, "find(%s) = %s\n", fields[1], ip.eg.Find(x))
		return nil

	case "union":
		if len(fields) != 3 {
			return fmt.Errorf("usage: union $name $name")
		}
		x, err := ip.resolve(fields[1])
		if err != nil {
			return err
		}
		y, err := ip.resolve(fields[2])
		if err != nil {
			return err
		}
		ip.eg.Union(x, y)
		fmt.Fprintf(ip.out, "union(%s, %s)\n", fields[1], fields[2])
		return nil

	case "equal":
		if len(fields) != 3 {
			return fmt.Errorf("usage: equal $name $name")
		}
		x, err := ip.resolve(fields[1])
		if err != nil {
			return err
		}
		y, err := ip.resolve(fields[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(ip.out, "equal(%s, %s) = %t\n", fields[1], fields[2], ip.eg.SUF().IsEqual(x, y))
		return nil

	case "add":
		if len(fields) < 4 || fields[len(fields)-2] != "->" {
			return fmt.Errorf("usage: add <symbol> $name ... -> $name")
		}
		symbol := fields[1]
		argNames := fields[2 : len(fields)-2]
		dest := fields[len(fields)-1]

		args := make([]slot.AppliedId, len(argNames))
		for i, name := range argNames {
			a, err := ip.resolve(name)
			if err != nil {
				return err
			}
			args[i] = a
		}
		result := ip.eg.Add(egraph.FnNode{Symbol: symbol, Args: args})
		if err := ip.bind(dest, result); err != nil {
			return err
		}
		fmt.Fprintf(ip.out, "%s = add(%s, ...) = %s\n", dest, symbol, result)
		return nil

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func (ip *Interpreter) bind(name string, id slot.AppliedId) error {
	if !strings.HasPrefix(name, "$") {
		return fmt.Errorf("variable names must start with $, got %q", name)
	}
	ip.vars[name] = id
	return nil
}

func (ip *Interpreter) resolve(name string) (slot.AppliedId, error) {
	if !strings.HasPrefix(name, "$") {
		return slot.AppliedId{}, fmt.Errorf("expected a $-prefixed variable, got %q", name)
	}
	id, ok := ip.vars[name]
	if !ok {
		return slot.AppliedId{}, fmt.Errorf("undefined variable %q", name)
	}
	return id, nil
}
