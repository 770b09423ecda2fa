// Command fndoc-locate prints the declarations a locator finds in a file,
// with their raw leading comments, for debugging comment attribution.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mvp-joe/fndoc/internal/indexer"
	"github.com/mvp-joe/fndoc/internal/indexer/parsers"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: fndoc-locate <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	locator, ok := parsers.NewRegistry().ForPath(path)
	if !ok {
		log.Fatalf("unsupported language: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	source, err := indexer.DecodeSource(raw, "utf-8")
	if err != nil {
		log.Fatal(err)
	}

	decls, err := locator.Locate(context.Background(), source)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== %s (%s) ===\n", path, locator.Language())
	fmt.Printf("Count: %d\n", len(decls))
	for _, d := range decls {
		fmt.Printf("\n%s at %d:%d\n", d.Name, d.Location.Line, d.Location.Column)
		if d.RawComment == "" {
			fmt.Println("  (no comment)")
			continue
		}
		fmt.Println(d.RawComment)
	}
}
