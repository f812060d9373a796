// Command hbmsim replays memory traces on a simulated HBM memory system.
package main

import "github.com/sarchlab/hbmsim/hbmsim/cmd"

func main() {
	cmd.Execute()
}
