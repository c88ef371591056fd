package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fanatic/linetransformer/server"
	"github.com/fanatic/linetransformer/transforms"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "10007"
	}
	name := os.Getenv("TRANSFORM")
	if name == "" {
		name = "reverse"
	}
	args := strings.Fields(os.Getenv("TRANSFORM_ARGS"))

	t, err := transforms.Lookup(name, args...)
	if err != nil {
		log.Fatalf("lineserver at=lookup transform=%q err=%q\n", name, err)
	}

	ctx := context.Background()

	s, err := server.NewServer(ctx, port, t)
	if err != nil {
		log.Fatalf("lineserver at=server err=%q\n", err)
	}

	done := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range c {
			log.Printf("lineserver at=server.exiting sig=%q\n", sig.String())
			s.Close()
			done <- struct{}{}
		}
	}()

	<-done
	log.Printf("lineserver at=server.finish\n")
}
