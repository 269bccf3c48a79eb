package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// InitLogging points the standard logger at stdout and, when path is set, an
// append-only log file as well. The returned file is nil when none was opened.
func InitLogging(path string) (*os.File, io.Writer) {
	if path == "" {
		log.SetOutput(os.Stdout)
		return nil, os.Stdout
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create log directory: %v", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: Failed to open log file: %v", err)
		log.SetOutput(os.Stdout)
		return nil, os.Stdout
	}
	w := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(w)
	return logFile, w
}

// GormLogger routes gorm's slow-query and error output to w.
func GormLogger(w io.Writer) gormlogger.Interface {
	return gormlogger.New(log.New(w, "\r\n", log.LstdFlags), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
