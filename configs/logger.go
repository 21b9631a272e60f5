package configs

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// InitLogger configures the shared logrus instance. Level comes from
// LOG_LEVEL; output is JSON so log collectors can index the fields.
func InitLogger() {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(EnvLogLevel())
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
}

// LogWithContext returns an entry tagged with the originating service and
// operation so every line carries its source.
func LogWithContext(service, operation string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"service":   service,
		"operation": operation,
	})
}
