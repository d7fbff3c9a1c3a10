package logger

import (
	log "github.com/sirupsen/logrus"
	"os"
	path "path/filepath"
)

var (
	filename = path.Base(os.Args[0])
)

func init() {
	log.SetLevel(log.ErrorLevel)
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat:  "01/02/2006 15:04:05.000000 -0700",
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
}

// SetLoggingLevel parses a logrus level name (panic, fatal, error, warn,
// info, debug) and applies it process-wide.
func SetLoggingLevel(level string) error {
	logLevel, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	log.SetLevel(logLevel)
	return nil
}

func entry() *log.Entry {
	return log.WithFields(log.Fields{
		"src": filename,
	})
}

func Debugf(format string, args ...interface{}) {
	entry().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	entry().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	entry().Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	entry().Errorf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	entry().Fatalf(format, args...)
}
