package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nikmy/timebot/pkg/environment"
	"github.com/nikmy/timebot/pkg/errors"
)

type Logger interface {
	With(label string) Logger
	WithField(key string, value any) Logger

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Panicf(format string, args ...any)

	Debug(err error)
	Info(err error)
	Warn(err error)
	Error(err error)
	Panic(err error)

	Sync()
}

func New(env environment.Env) (Logger, error) {
	var cfg zap.Config

	switch env {
	case environment.Production:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.WrapFail(err, "build zap logger")
	}

	return &wrapper{base: logger.Sugar()}, nil
}

type wrapper struct {
	base *zap.SugaredLogger
}

func (w *wrapper) With(label string) Logger {
	return &wrapper{w.base.Named(label)}
}

func (w *wrapper) WithField(key string, value any) Logger {
	return &wrapper{w.base.With(key, value)}
}

func (w *wrapper) Sync() {
	_ = w.base.Sync()
}

func (w *wrapper) Debug(err error) { w.base.Debugf("%s", err) }
func (w *wrapper) Info(err error)  { w.base.Infof("%s", err) }
func (w *wrapper) Warn(err error)  { w.base.Warnf("%s", err) }
func (w *wrapper) Error(err error) { w.base.Errorf("%s", err) }
func (w *wrapper) Panic(err error) { w.base.Panicf("%s", err) }

func (w *wrapper) Debugf(format string, args ...any) { w.base.Debugf(format, args...) }
func (w *wrapper) Infof(format string, args ...any)  { w.base.Infof(format, args...) }
func (w *wrapper) Warnf(format string, args ...any)  { w.base.Warnf(format, args...) }
func (w *wrapper) Errorf(format string, args ...any) { w.base.Errorf(format, args...) }
func (w *wrapper) Panicf(format string, args ...any) { w.base.Panicf(format, args...) }
