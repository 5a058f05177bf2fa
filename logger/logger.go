// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

const logFlags = log.Ldate | log.Ltime | log.Lshortfile

// ------------------- logger initialization -------------------

// InitLogger reinitializes the logging system so that every level writes to
// stdout and to a timestamped file inside dir. The directory is created when
// missing. An empty dir keeps stdout-only output.
func InitLogger(dir string) error {
	if dir == "" {
		configure(os.Stdout)
		return nil
	}

	// ensure logs directory exists
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	// create a timestamped log file
	logFileName := filepath.Join(dir, time.Now().Format("2006-01-02_15-04-05")+".log")
	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
	if err != nil {
		return err
	}

	// write logs to both stdout and the file
	configure(io.MultiWriter(os.Stdout, file))
	return nil
}

func configure(w io.Writer) {
	Info = log.New(w, "INFO: ", logFlags)
	Warn = log.New(w, "WARN: ", logFlags)
	Error = log.New(w, "ERROR: ", logFlags)
	Debug = log.New(w, "DEBUG: ", logFlags)
}

// SetLogLevel adjusts the Debug logger’s output depending on environment.
// Production discards debug output, every other environment keeps it.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}

// init wires stdout loggers so packages can log before main calls InitLogger
// (and so tests never touch the filesystem).
func init() {
	configure(os.Stdout)
}
