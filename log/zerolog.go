// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"io"

	"github.com/rs/zerolog"
)

// ZerologFactory returns a logger factory backed by a zerolog logger writing
// to the given output. Entries below the given threshold are dropped.
func ZerologFactory(w io.Writer, threshold LoggerLevel) Factory {
	zl := zerolog.New(w).With().Timestamp().Logger()
	return &zerologFactory{
		root:      zl,
		threshold: threshold,
	}
}

type zerologFactory struct {
	root      zerolog.Logger
	threshold LoggerLevel
}

var (
	_ Factory = (*zerologFactory)(nil)
	_ Logger  = (*zerologAdapter)(nil)
)

func (f *zerologFactory) New() Logger {
	return &zerologAdapter{
		ctx:       f.root.With(),
		threshold: f.threshold,
		lvl:       InfoLevel,
	}
}

type zerologAdapter struct {
	ctx       zerolog.Context
	threshold LoggerLevel
	lvl       LoggerLevel
	err       error
}

func (a *zerologAdapter) Level(lvl LoggerLevel) Logger {
	a.lvl = lvl
	return a
}

func (a *zerologAdapter) Field(k string, v any) Logger {
	a.ctx = a.ctx.Interface(k, v)
	return a
}

func (a *zerologAdapter) Fields(data map[string]any) Logger {
	a.ctx = a.ctx.Fields(data)
	return a
}

func (a *zerologAdapter) Error(err error) Logger {
	a.err = err
	if a.lvl < ErrorLevel {
		a.lvl = ErrorLevel
	}
	return a
}

func (a *zerologAdapter) Message(msg string) {
	a.event().Msg(msg)
}

func (a *zerologAdapter) Messagef(format string, v ...any) {
	a.event().Msgf(format, v...)
}

func (a *zerologAdapter) event() *zerolog.Event {
	zl := a.ctx.Logger()

	// Drop entries below the configured threshold
	if a.lvl < a.threshold {
		disabled := zl.Level(zerolog.Disabled)
		return disabled.Debug()
	}

	var evt *zerolog.Event
	switch a.lvl {
	case DebugLevel:
		evt = zl.Debug()
	case ErrorLevel:
		evt = zl.Error()
	default:
		evt = zl.Info()
	}
	if a.err != nil {
		evt = evt.Err(a.err)
	}
	return evt
}
