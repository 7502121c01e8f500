package app

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Asad-28/weather-app/internal/config"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()
	return port
}

func TestRun_listenFailureDisconnectsMQTT(t *testing.T) {
	var logs syncBuffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	// hold the HTTP port so ListenAndServe fails right away
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = busy.Close() })

	dir := t.TempDir()
	cfg := config.Config{
		AppEnv:             "dev",
		HTTPAddr:           busy.Addr().String(),
		LogFile:            filepath.Join(dir, "weather_app.log"),
		OWMAPIKey:          "test",
		OWMBaseURL:         config.DefaultOWMBaseURL,
		SQLitePath:         filepath.Join(dir, "weather_app.db"),
		SQLiteMaxOpenConns: 1,
		MQTTBroker:         "127.0.0.1",
		MQTTPort:           freePort(t),
		MQTTClientID:       "weather-app-test",
		MQTTTopicPrefix:    "weather",
		ServiceName:        "weather-app",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = Run(ctx, cfg)
	if err == nil || !strings.Contains(err.Error(), "address already in use") {
		t.Fatalf("Run err = %v; want address already in use", err)
	}
	if !strings.Contains(logs.String(), "mqtt publisher disconnected") {
		t.Errorf("publisher not disconnected on early return; logs:\n%s", logs.String())
	}
}
