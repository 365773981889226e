// agrodesk-demo serves a local stand-in for the Agro Auto-Resolve backend,
// useful for trying the client without the real orchestrator.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"agrodesk/pkg/config"
	"agrodesk/pkg/demo"
	"agrodesk/pkg/logging"
	"agrodesk/pkg/version"
)

func main() {
	var (
		addr        = flag.String("addr", ":8000", "listen address")
		showVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Summary())
		return
	}

	cfg := config.Default()
	cfg.LogFormat = "text"
	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	srv := demo.NewServer()
	slog.Info("demo_backend_listening", "addr", *addr)
	fmt.Printf("agrodesk demo backend listening on %s\n", *addr)

	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		slog.Error("demo_backend_failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
