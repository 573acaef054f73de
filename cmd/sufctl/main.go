// Command sufctl drives a slotted union-find / e-graph instance from
// the command line: running scripts against it and persisting named
// snapshots to a database-backed store.
package main

import "github.com/sufgraph/suf/cmd/sufctl/cmd"

func main() {
	cmd.Execute()
}
