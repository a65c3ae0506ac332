package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var logFileName = filepath.Join(os.TempDir(), "mariner.log")

// The loggers discard until Initialize points them at the log file, so
// library code can log unconditionally.
var (
	// InfoLog logs informational messages.
	InfoLog = log.New(io.Discard, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	// WarningLog logs recoverable oddities (bad config values, slow reloads).
	WarningLog = log.New(io.Discard, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	// ErrorLog logs failures that were reported to the user or swallowed.
	ErrorLog = log.New(io.Discard, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

var globalLogFile *os.File

// Initialize opens the log file and sets up the global loggers. Every
// process writes to the same file; entries are prefixed with their level.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("could not open log file: %s", err)
	}

	InfoLog = log.New(f, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	globalLogFile = f
}

// Writer returns the open log file, for wrapping the loggers with
// forwarding writers. Nil before Initialize.
func Writer() io.Writer {
	if globalLogFile == nil {
		return nil
	}
	return globalLogFile
}

// Close flushes and closes the log file. If anything was written, the
// location is printed so users can find it.
func Close() {
	if globalLogFile == nil {
		return
	}
	stat, err := globalLogFile.Stat()
	if err == nil && stat.Size() > 0 {
		fmt.Println("log file:", logFileName)
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
}
