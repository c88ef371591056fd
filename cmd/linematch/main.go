package main

import (
	"log"
	"os"

	"github.com/fanatic/linetransformer/transformer"
	"github.com/fanatic/linetransformer/transforms"
)

// Print the lines of stdin that match the pattern given as first argument.
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s PATTERN\n", os.Args[0])
	}

	match, err := transforms.Match(os.Args[1])
	if err != nil {
		log.Fatalf("linematch at=compile err=%q\n", err)
	}

	if err := transformer.Handle(os.Stdin, os.Stdout, match); err != nil {
		log.Fatalf("linematch at=handle err=%q\n", err)
	}
}
