package main

import (
	"context"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rohitmodi970/casual-quizing/internal/apiclient"
	"github.com/rohitmodi970/casual-quizing/internal/cli"
	"github.com/rohitmodi970/casual-quizing/internal/session"
)

func main() {
	var (
		email    string
		server   string
		duration time.Duration
		verbose  bool
	)
	flag.StringVar(&email, "email", "", "Email address to record the attempt under (required)")
	flag.StringVar(&server, "server", "http://localhost:8080", "Quiz backend base URL")
	flag.DurationVar(&duration, "duration", 15*time.Minute, "Attempt time limit")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging to stderr")
	flag.Parse()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		fmt.Fprintln(os.Stderr, "error: -email is required")
		flag.Usage()
		os.Exit(2)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fmt.Fprintf(os.Stderr, "error: %q is not a valid email address\n", email)
		os.Exit(2)
	}

	level := zerolog.Disabled
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := apiclient.New(server, nil)
	engine := session.NewEngine(session.Config{
		Email:    email,
		Duration: duration,
	}, backend, backend, log)

	app := cli.New(engine, os.Stdin, os.Stdout, log)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
