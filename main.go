package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"

	"httpsnare/capture"
	"httpsnare/console"
	"httpsnare/httpx"
	"httpsnare/utils"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	resolver, err := utils.NewResolver()
	if err != nil {
		log.Fatalf("interface enumeration: %v", err)
	}
	addr, err := resolver.Resolve(cfg.Bind)
	if err != nil {
		log.Fatalf("bind address: %v", err)
	}

	var recorder *capture.Recorder
	if cfg.OutputDir != "" {
		recorder, err = capture.Open(cfg.OutputDir, cfg.Accessible)
		if err != nil {
			log.Fatalf("capture root: %v", err)
		}
	}

	tlsConf, err := buildTLSConfig(cfg)
	if err != nil {
		log.Fatalf("tls: %v", err)
	}

	cons := console.New(os.Stdout, console.Options{
		Verbose:    cfg.Verbose,
		Accessible: cfg.Accessible,
		NoColor:    cfg.NoColor,
	})
	logger := log.New(os.Stderr, "http ", log.LstdFlags)
	handler := httpx.NewHandler(httpx.Options{
		NonGetMessage: cfg.NonGetMessage,
		ServeDir:      cfg.ServeDir,
		IgnoreParam:   cfg.IgnoreParam,
		ProxyHops:     cfg.ProxyHops,
		CORS:          cfg.CORS,
	}, cons, recorder, logger)

	listenAddr := net.JoinHostPort(addr, strconv.Itoa(cfg.Port))
	if _, err := StartHTTPServer(listenAddr, handler, tlsConf, logger); err != nil {
		log.Fatalf("start http failure: %v", err)
	}

	if !cfg.Quiet {
		cons.Print(infoPanel(resolver, cfg, false))
		scheme := "http"
		if tlsConf != nil {
			scheme = "https"
		}
		cons.Print(fmt.Sprintf("%s://%s:%d\n", scheme, addr, cfg.Port))
	}

	// Foreground loop: each line of operator input re-prints the info panel.
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		cons.Print(infoPanel(resolver, cfg, !cfg.Accessible))
	}

	// Stdin closed (detached run): block until termination signal to keep
	// the listener goroutine alive.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Printf("received signal %s, exiting", sig)
}
