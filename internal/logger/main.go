package logger

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Package logger implements the global zerolog logger.

// Init the zerolog logger.
// Output goes to a rolling file when one is configured and is
// discarded otherwise, leaving the terminal to the UI.
func Init(cfg Log) error {
	var (
		logLevel, err = zerolog.ParseLevel(cfg.Level)
		stack         bool
	)

	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.Level))
	}

	// use zerolog stack marshal func if trace level is set
	if logLevel == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		stack = true
	}

	zerolog.SetGlobalLevel(logLevel)

	w := newWriter(cfg)

	// decide what zero log should show
	switch {
	case cfg.ReportCaller && stack:
		log.Logger = zerolog.New(w).With().Timestamp().Stack().Logger()
	case cfg.ReportCaller:
		log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()
	default:
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}

	return nil
}

// newWriter uses lumberjack to create a rolling file based log.
func newWriter(cfg Log) io.Writer {
	if cfg.File == "" {
		return io.Discard
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  false,
		Compress:   false,
	}
}
