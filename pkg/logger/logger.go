package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ZerologLogger implementa Logger sobre zerolog, com saída estruturada
// em JSON e pares chave/valor anexados ao evento
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewLogger cria um Logger com o nível definido pela variável de
// ambiente LOG_LEVEL (debug, info, warn, error); o padrão é info
func NewLogger() Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zl := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	return &ZerologLogger{logger: zl}
}

// NewNopLogger cria um Logger que descarta tudo, útil em testes
func NewNopLogger() Logger {
	return &ZerologLogger{logger: zerolog.Nop()}
}

func (l *ZerologLogger) log(evt *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		evt = evt.Interface(key, keysAndValues[i+1])
	}
	evt.Msg(msg)
}

// Info registra uma mensagem de informação
func (l *ZerologLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(l.logger.Info(), msg, keysAndValues)
}

// Error registra uma mensagem de erro
func (l *ZerologLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(l.logger.Error(), msg, keysAndValues)
}

// Debug registra uma mensagem de debug
func (l *ZerologLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(l.logger.Debug(), msg, keysAndValues)
}

// Warn registra uma mensagem de aviso
func (l *ZerologLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(l.logger.Warn(), msg, keysAndValues)
}
