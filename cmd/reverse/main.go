package main

import (
	"log"
	"os"

	"github.com/fanatic/linetransformer/transformer"
	"github.com/fanatic/linetransformer/transforms"
)

// Print every line of stdin with its characters reversed.
func main() {
	if err := transformer.Handle(os.Stdin, os.Stdout, transforms.Reverse); err != nil {
		log.Fatalf("reverse at=handle err=%q\n", err)
	}
}
