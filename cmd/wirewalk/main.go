// Command wirewalk reads a wire message from standard input and pretty-prints
// the decoded object tree to standard output.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kungfusheep/wirewalk"
)

func main() {
	maxBytes := flag.Int("max-bytes", 16384, "largest accepted input in bytes, 0 for the format maximum")
	depth := flag.Int("depth", wirewalk.DefaultMaxDepth, "traversal depth limit")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *maxBytes, *depth); err != nil {
		fmt.Fprintf(os.Stderr, "wirewalk: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, maxBytes, depth int) error {
	if maxBytes == 0 {
		maxBytes = wirewalk.MaxWords * wirewalk.WordSize
	}

	// Read one past the cap so oversized input is distinguishable from
	// input that exactly fills it.
	msg, err := io.ReadAll(io.LimitReader(in, int64(maxBytes)+1))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if len(msg) > maxBytes {
		return fmt.Errorf("input larger than %d bytes", maxBytes)
	}

	buf, err := wirewalk.NewBuffer(msg)
	if err != nil {
		return err
	}

	p := wirewalk.NewPrinter(out)
	w := wirewalk.Walker{MaxDepth: depth}
	if err := w.Walk(buf, p); err != nil {
		return err
	}
	return p.Err()
}
