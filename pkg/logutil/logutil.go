// Package logutil provides a shared destination for debug logs.
//
// All packages obtain their loggers from GetLogger. Logs are discarded until
// the destination is set with SetOutput or SetOutputFile, typically from the
// -log flag.
package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	out     io.Writer = io.Discard
	outFile *os.File
	loggers []*log.Logger
)

// GetLogger gets a logger with the given prefix.
func GetLogger(prefix string) *log.Logger {
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained from GetLogger to w.
// If the previous destination was a file opened by SetOutputFile, it is
// closed.
func SetOutput(w io.Writer) {
	closeOutFile()
	outFile = nil
	setOutput(w)
}

// SetOutputFile redirects the output of all loggers obtained from GetLogger
// to the named file, which is created if it does not exist. An empty name
// reverts to discarding logs.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	closeOutFile()
	outFile = file
	setOutput(file)
	return nil
}

func setOutput(w io.Writer) {
	out = w
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

func closeOutFile() {
	if outFile != nil {
		outFile.Close()
	}
}
