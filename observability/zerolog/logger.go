// Package zerolog adapts github.com/rs/zerolog to core.Logger.
package zerolog

import (
	"github.com/rs/zerolog"

	"github.com/Swind/go-frame-scheduler/core"
)

// Logger is a core.Logger writing through a zerolog.Logger.
type Logger struct {
	Z zerolog.Logger
}

var _ core.Logger = (*Logger)(nil)

// New wraps z.
func New(z zerolog.Logger) *Logger {
	return &Logger{Z: z}
}

func (x *Logger) Debug(msg string, fields ...core.Field) {
	write(x.Z.Debug(), msg, fields)
}

func (x *Logger) Info(msg string, fields ...core.Field) {
	write(x.Z.Info(), msg, fields)
}

func (x *Logger) Warn(msg string, fields ...core.Field) {
	write(x.Z.Warn(), msg, fields)
}

func (x *Logger) Error(msg string, fields ...core.Field) {
	write(x.Z.Error(), msg, fields)
}

// write is a no-op for disabled levels, zerolog hands out a nil event
func write(e *zerolog.Event, msg string, fields []core.Field) {
	if e == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			e.AnErr(f.Key, v)
		case string:
			e.Str(f.Key, v)
		default:
			e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}
