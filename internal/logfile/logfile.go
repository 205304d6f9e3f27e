package logfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"pisetup/internal/logger"
)

// Journal is the append-only provisioning log. Every command invocation and group
// summary ends up here with a timestamp, whatever the console shows. The file is
// opened once at startup and only ever appended to; the program never reads it back.
type Journal struct {
	log  *logrus.Logger
	file *os.File
}

// lineFormatter renders one event per line as:
//
//	2025-08-26 14:03:11 - INFO apt-get update succeeded
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(e.Level.String())
	if e.Level == logrus.WarnLevel {
		level = "WARN"
	}
	return []byte(fmt.Sprintf("%s - %s %s\n", e.Time.Format("2006-01-02 15:04:05"), level, e.Message)), nil
}

// Open creates a Journal appending to the file at path. When the file cannot be
// opened (read-only filesystem, permissions) the Journal degrades to a discard
// sink instead of failing the run; the console still reports everything.
func Open(path string) *Journal {
	log := logrus.New()
	log.SetFormatter(lineFormatter{})
	log.SetLevel(logrus.DebugLevel)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Warn("[WARN] Cannot open log file %s: %v (logging to console only)\n", path, err)
		log.SetOutput(io.Discard)
		return &Journal{log: log}
	}
	log.SetOutput(f)
	return &Journal{log: log, file: f}
}

// NewWriter builds a Journal over an arbitrary writer. Used by tests.
func NewWriter(w io.Writer) *Journal {
	log := logrus.New()
	log.SetFormatter(lineFormatter{})
	log.SetLevel(logrus.DebugLevel)
	log.SetOutput(w)
	return &Journal{log: log}
}

// Close releases the underlying file, if any.
func (j *Journal) Close() {
	if j.file != nil {
		_ = j.file.Close()
	}
}

func (j *Journal) Info(format string, a ...any)  { j.log.Infof(format, a...) }
func (j *Journal) Warn(format string, a ...any)  { j.log.Warnf(format, a...) }
func (j *Journal) Error(format string, a ...any) { j.log.Errorf(format, a...) }
func (j *Journal) Debug(format string, a ...any) { j.log.Debugf(format, a...) }
