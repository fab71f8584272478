package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// setupLog configures the global logger. Logs go to stderr, or to the
// file named by CASTKIT_LOGFILE. The returned closer must be called on
// exit.
func setupLog() (func() error, error) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)
	log.SetLevel(log.WarnLevel)

	if viper.GetBool("debug") || os.Getenv("CASTKIT_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	if path := os.Getenv("CASTKIT_LOGFILE"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		log.SetOutput(f)
		log.SetReportTimestamp(true)
		return f.Close, nil
	}

	return func() error { return nil }, nil
}
