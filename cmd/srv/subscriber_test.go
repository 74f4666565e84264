package main

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_waitTermSignal(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	go func() { sigCh <- waitTermSignal() }()

	// Give the goroutine time to register the handler before signalling.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case sig := <-sigCh:
		require.Equal(t, syscall.SIGTERM, sig)
	case <-time.After(time.Second):
		t.Fatal("the term signal was never observed")
	}
}
