// Command broadlinksim answers enough of the Broadlink wire protocol to
// exercise rbroadlink and integration tests without physical hardware.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/barnettlynn/rbroadlink-go/pkg/broadlink"
)

func main() {
	var (
		modelHex  = flag.String("model", "649b", "hex device model code to impersonate (default: an RM4 Pro)")
		macHex    = flag.String("mac", "010203040506", "6-byte hex MAC address, no separators")
		name      = flag.String("name", "broadlinksim", "device name reported to discovery")
		addr      = flag.String("addr", ":80", "address to listen on")
		verbose   = flag.Bool("v", false, "enable debug logging")
		logFormat = flag.String("log-format", "text", "log format: text or json")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	if *logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))

	modelBytes, err := hex.DecodeString(*modelHex)
	if err != nil || len(modelBytes) != 2 {
		fmt.Fprintf(os.Stderr, "Error: -model must be 4 hex characters (2 bytes), got %q\n", *modelHex)
		os.Exit(1)
	}
	modelCode := uint16(modelBytes[0])<<8 | uint16(modelBytes[1])

	macBytes, err := hex.DecodeString(*macHex)
	if err != nil || len(macBytes) != 6 {
		fmt.Fprintf(os.Stderr, "Error: -mac must be 12 hex characters (6 bytes), got %q\n", *macHex)
		os.Exit(1)
	}
	var mac [6]byte
	copy(mac[:], macBytes)

	sim := broadlink.NewSimulator(modelCode, mac, *name)

	done := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(done)
	}()

	slog.Info("broadlinksim: listening", "addr", *addr, "model", fmt.Sprintf("0x%04X", modelCode), "name", *name)
	if err := sim.ListenAndServe(*addr, done); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
