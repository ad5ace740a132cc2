// benchgraph charts per-thread latency and memory usage from the text
// output of a multi-threaded allocator stress benchmark.
package main

import (
	"os"

	"github.com/ccollicutt/benchgraph/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
