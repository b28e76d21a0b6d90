package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/agentdesk/agentdesk-go/internal/config"
	"github.com/agentdesk/agentdesk-go/rest"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", rest.Message(err))
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logger := newLogger(c)

	app, err := newApp(c, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	root := newRootCommand(app)
	return root.ExecuteContext(ctx)
}

func newLogger(c config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.GetEnv() != "DEV" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
