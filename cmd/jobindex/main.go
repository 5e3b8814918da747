// Command jobindex serves job openings over HTTP and indexes them for
// semantic search.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
