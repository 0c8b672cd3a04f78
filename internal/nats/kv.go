// Package nats runs an in-process NATS server whose JetStream key-value
// bucket holds the wizard's durable state.
package nats

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/sensei/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// BucketName is the key-value bucket holding durable wizard state.
const BucketName = "sensei_state"

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// embedded pairs the server with its single in-process client.
type embedded struct {
	ns     *server.Server
	nc     *nats.Conn
	closed chan struct{}

	once sync.Once
	err  error
}

// OpenKV starts a JetStream server storing under dataDir, connects to it
// in-process and returns the state bucket. The close func drains the client
// and stops the server; it may be called more than once. On error nothing is
// left running.
func OpenKV(ctx context.Context, dataDir string) (jetstream.KeyValue, func() error, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	ns, err := server.NewServer(&server.Options{
		ServerName: "sensei",
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
		NoSigs:     true,
		NoLog:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating nats server: %w", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, nil, fmt.Errorf("nats server not ready after %s", readyTimeout)
	}

	e := &embedded{ns: ns, closed: make(chan struct{})}
	e.nc, err = nats.Connect("",
		nats.InProcessServer(ns),
		nats.Name("sensei"),
		nats.ClosedHandler(func(*nats.Conn) { close(e.closed) }),
	)
	if err != nil {
		ns.Shutdown()
		return nil, nil, fmt.Errorf("connecting in-process: %w", err)
	}

	js, err := jetstream.New(e.nc)
	if err != nil {
		_ = e.close()
		return nil, nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      BucketName,
		Description: "sensei durable wizard state",
		History:     1, // only the latest value per key matters
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		_ = e.close()
		return nil, nil, fmt.Errorf("opening bucket %s: %w", BucketName, err)
	}

	logger.Debug("NATS KV bucket %s ready in %s", BucketName, dataDir)
	return kv, e.close, nil
}

func (e *embedded) close() error {
	e.once.Do(func() {
		if err := e.nc.Drain(); err != nil {
			logger.Warn("NATS drain failed, closing: %v", err)
			e.nc.Close()
		}
		select {
		case <-e.closed:
		case <-time.After(drainTimeout):
			logger.Warn("NATS drain still running after %s, closing", drainTimeout)
			e.nc.Close()
		}

		e.ns.Shutdown()
		done := make(chan struct{})
		go func() {
			e.ns.WaitForShutdown()
			close(done)
		}()
		select {
		case <-done:
			logger.Debug("NATS server stopped")
		case <-time.After(shutdownTimeout):
			e.err = errors.New("nats server shutdown timed out")
		}
	})
	return e.err
}
