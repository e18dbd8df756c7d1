// Command mq runs deferred queries over YAML/JSON datasets and SQLite tables.
package main

import (
	"fmt"
	"os"

	"github.com/lguimbarda/min-query/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
