package main

import (
	"log"
	"os"

	"github.com/fanatic/linetransformer/transformer"
	"github.com/fanatic/linetransformer/transforms"
)

// Print only even-length lines (omit lines whose length is odd).
func main() {
	if err := transformer.Handle(os.Stdin, os.Stdout, transforms.EvenLength); err != nil {
		log.Fatalf("evenlength at=handle err=%q\n", err)
	}
}
