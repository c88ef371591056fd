package server

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"

	"github.com/fanatic/linetransformer/transformer"
	proxyproto "github.com/pires/go-proxyproto"
)

type Server struct {
	Addr   string
	l      net.Listener
	cancel context.CancelFunc
	wg     sync.WaitGroup

	transform transformer.Transformer
}

func NewServer(ctx context.Context, port string, t transformer.Transformer) (*Server, error) {
	ctx, cancel := context.WithCancel(ctx)

	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", "0.0.0.0:"+port)
	if err != nil {
		cancel()
		return nil, err
	}

	// Wrap listener in a proxyproto listener
	l = &proxyproto.Listener{Listener: l}

	log.Printf("lineserver at=server.listening addr=%q\n", l.Addr().String())
	s := &Server{
		Addr:      l.Addr().String(),
		l:         l,
		cancel:    cancel,
		transform: t,
	}

	go s.acceptLoop(ctx)

	return s, nil
}

func (s *Server) Close() error {
	// Stop accepting new connections
	s.cancel()

	// Stop listening on port
	err := s.l.Close()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}

	// Wait for in-flight connections to drain
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn, err := s.l.Accept()
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if err != nil {
				log.Printf("lineserver at=accept err=%q\n", err)
				continue
			}
			s.wg.Add(1)
			go func() {
				s.handleConn(conn)
				s.wg.Done()
			}()
		}
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	log.Printf("lineserver at=handle-connection.start remote-addr=%q\n", conn.RemoteAddr())

	if err := transformer.Handle(conn, conn, s.transform); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return
		}
		log.Printf("lineserver at=handle-connection.err remote-addr=%q err=%s\n", conn.RemoteAddr(), err)
		return
	}

	log.Printf("lineserver at=handle-connection.finish remote-addr=%q\n", conn.RemoteAddr())
}
