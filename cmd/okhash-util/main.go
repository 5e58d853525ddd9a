// Command okhash-util groups tools built on O(K)Hash fingerprints: level by
// level comparison, duplicate detection and test file generation.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/xaled/okhash/internal/cmd"
)

func main() {
	if err := fang.Execute(context.Background(), cmd.NewUtilCmd()); err != nil {
		os.Exit(1)
	}
}
