package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/liamiak1/hyper-fairy-chess/internal/version"
	"github.com/liamiak1/hyper-fairy-chess/pkg/room"
	"github.com/liamiak1/hyper-fairy-chess/pkg/session"
	"github.com/liamiak1/hyper-fairy-chess/pkg/transport/ws"
	"github.com/seekerror/logw"
)

var (
	addr = flag.String("addr", ":8080", "HTTP listen address")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `usage: hyperfairyd [options]

HYPERFAIRYD serves the hyper fairy chess room protocol over websockets.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "hyperfairyd %v starting on %v", version.V, *addr)

	clk := clock.New()
	directory := room.NewDirectory(clk, clk.Now().UnixNano())

	stop := make(chan struct{})
	go directory.RunSweeper(stop)

	var hub *ws.Hub
	var dispatcher *session.Dispatcher
	hub = ws.NewHub(
		func(msgCtx context.Context, connID string, raw []byte) { dispatcher.Handle(msgCtx, connID, raw) },
		func(connID string) { dispatcher.Unbind(connID) },
	)
	dispatcher = session.NewDispatcher(directory, hub, clk)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		hub.ServeHTTP(w, r, uuid.NewString())
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok %v, %d rooms", version.V, directory.Count())
	})

	srv := &http.Server{Addr: *addr, Handler: mux}
	logw.Exitf(ctx, "%v", srv.ListenAndServe())
}
