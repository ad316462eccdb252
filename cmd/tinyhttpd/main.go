package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/indigo-web/tinyhttpd"
	"github.com/indigo-web/tinyhttpd/config"
)

func main() {
	addr := flag.String("addr", "", "host:port to listen on (overrides the config)")
	configPath := flag.String("config", "", "JSON config file")
	root := flag.String("root", "", "directory to serve and to store uploads in (overrides the config)")
	flag.Parse()

	cfg := config.Default()
	if len(*configPath) > 0 {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	if len(*addr) > 0 {
		cfg.NET.Addr = *addr
	}

	if len(*root) > 0 {
		cfg.FS.Rebase(*root)
	}

	app := tinyhttpd.New(cfg)
	go awaitTermination(app, bufio.NewScanner(os.Stdin))

	if err := app.Serve(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// awaitTermination shuts the app down on SIGTERM, or on SIGINT if the operator confirms it.
func awaitTermination(app *tinyhttpd.App, answers *bufio.Scanner) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for sig := range signals {
		if sig == syscall.SIGTERM || confirm(answers) {
			app.Shutdown()
			return
		}
	}
}

func confirm(answers *bufio.Scanner) bool {
	fmt.Fprint(os.Stderr, "Terminate the server? (y/n) ")

	if !answers.Scan() {
		// nobody to ask
		return true
	}

	switch strings.TrimSpace(answers.Text()) {
	case "y", "Y":
		return true
	}

	return false
}
