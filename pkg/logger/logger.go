// Package logger expone un logger global basado en zerolog.
// En development escribe con formato legible por humanos (ConsoleWriter);
// en cualquier otro entorno escribe JSON estructurado a stderr.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configura el logger global según el entorno y el nivel deseado.
func Init(env, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// Get devuelve el logger global.
func Get() *zerolog.Logger {
	return &log.Logger
}

// Info registra un mensaje informativo.
func Info(msg string) {
	log.Info().Msg(msg)
}

// Infof registra un mensaje informativo con formato.
func Infof(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

// Warn registra una advertencia.
func Warn(msg string) {
	log.Warn().Msg(msg)
}

// Warnf registra una advertencia con formato.
func Warnf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

// Error registra un error.
func Error(err error, msg string) {
	log.Error().Err(err).Msg(msg)
}

// Errorf registra un error con formato.
func Errorf(err error, format string, args ...interface{}) {
	log.Error().Err(err).Msgf(format, args...)
}

// Fatal registra un error fatal y termina el proceso.
func Fatal(err error, msg string) {
	log.Fatal().Err(err).Msg(msg)
}

// Debug registra un mensaje de depuración.
func Debug(msg string) {
	log.Debug().Msg(msg)
}

// Debugf registra un mensaje de depuración con formato.
func Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
