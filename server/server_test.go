package server_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/fanatic/linetransformer/server"
	"github.com/fanatic/linetransformer/transforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, addr, payload string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = fmt.Fprint(conn, payload)
	require.NoError(t, err)

	// Close write-side of the connection
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		require.NoError(t, cw.CloseWrite())
	} else {
		t.Fatal("Can't half-close connection")
	}

	b, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(b)
}

func TestServerReverse(t *testing.T) {
	ctx := context.Background()
	s, err := server.NewServer(ctx, "", transforms.Reverse)
	require.NoError(t, err)
	defer s.Close()

	t.Run("happy-path", func(t *testing.T) {
		assert.Equal(t, "ba\ndc\n", roundTrip(t, s.Addr, "ab\ncd"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", roundTrip(t, s.Addr, ""))
	})

	t.Run("concurrent-clients", func(t *testing.T) {
		done := make(chan string, 5)
		for i := 0; i < 5; i++ {
			go func(i int) {
				conn, err := net.Dial("tcp", s.Addr)
				if err != nil {
					done <- err.Error()
					return
				}
				defer conn.Close()
				if _, err := fmt.Fprintf(conn, "client%d\n", i); err != nil {
					done <- err.Error()
					return
				}
				if err := conn.(*net.TCPConn).CloseWrite(); err != nil {
					done <- err.Error()
					return
				}
				b, err := io.ReadAll(conn)
				if err != nil {
					done <- err.Error()
					return
				}
				done <- string(b)
			}(i)
		}

		var got, want []string
		for i := 0; i < 5; i++ {
			got = append(got, <-done)
			want = append(want, fmt.Sprintf("%dtneilc\n", i))
		}
		assert.ElementsMatch(t, want, got)
	})
}

func TestServerEvenLength(t *testing.T) {
	ctx := context.Background()
	s, err := server.NewServer(ctx, "", transforms.EvenLength)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "12\n12\n", roundTrip(t, s.Addr, "12\n123\n12"))
}

func TestServerClose(t *testing.T) {
	ctx := context.Background()
	s, err := server.NewServer(ctx, "", transforms.Reverse)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = net.Dial("tcp", s.Addr)
	assert.Error(t, err)

	// A second close finds the listener already closed.
	assert.NoError(t, s.Close())
}
