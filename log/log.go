/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const recordChanBufferSize = 256

// singleton interface
var (
	inst        *Logger
	instMu      sync.RWMutex
	initialized uint32
)

// Logger logs messages to the console and, optionally, to a log file.
type Logger struct {
	level     Level
	outWriter io.Writer
	f         *os.File
	recCh     chan record
	closeCh   chan struct{}
}

func newLogger(cfg *Config, outWriter io.Writer) (*Logger, error) {
	l := &Logger{
		level:     cfg.Level,
		outWriter: outWriter,
	}
	if len(cfg.LogPath) > 0 {
		// create log file intermediate directories.
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), os.ModePerm); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, err
		}
		l.f = f
	}
	l.recCh = make(chan record, recordChanBufferSize)
	l.closeCh = make(chan struct{})
	go l.loop()
	return l, nil
}

// Initialize initializes the default log subsystem.
func Initialize(cfg *Config) error {
	if atomic.CompareAndSwapUint32(&initialized, 0, 1) {
		instMu.Lock()
		defer instMu.Unlock()

		l, err := newLogger(cfg, os.Stdout)
		if err != nil {
			return err
		}
		inst = l
	}
	return nil
}

// Shutdown shuts down the log subsystem.
func Shutdown() {
	if atomic.CompareAndSwapUint32(&initialized, 1, 0) {
		instMu.Lock()
		defer instMu.Unlock()

		close(inst.closeCh)
		inst = nil
	}
}

func instance() *Logger {
	instMu.RLock()
	defer instMu.RUnlock()
	return inst
}

// Debugf logs a 'debug' message to the log file
// and echoes it to the console.
func Debugf(format string, args ...interface{}) {
	if inst := instance(); inst != nil && inst.level <= DebugLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, format, DebugLevel, args...)
	}
}

// Infof logs an 'info' message to the log file
// and echoes it to the console.
func Infof(format string, args ...interface{}) {
	if inst := instance(); inst != nil && inst.level <= InfoLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, format, InfoLevel, args...)
	}
}

// Warnf logs a 'warning' message to the log file
// and echoes it to the console.
func Warnf(format string, args ...interface{}) {
	if inst := instance(); inst != nil && inst.level <= WarningLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, format, WarningLevel, args...)
	}
}

// Errorf logs an 'error' message to the log file
// and echoes it to the console.
func Errorf(format string, args ...interface{}) {
	if inst := instance(); inst != nil && inst.level <= ErrorLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, format, ErrorLevel, args...)
	}
}

// Error logs an 'error' value to the log file
// and echoes it to the console.
func Error(err error) {
	if inst := instance(); inst != nil && inst.level <= ErrorLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, "%v", ErrorLevel, err)
	}
}

type callerInfo struct {
	filename string
	line     int
}

type record struct {
	level Level
	file  string
	line  int
	log   string
}

func (l *Logger) writeLog(file string, line int, format string, level Level, args ...interface{}) {
	entry := record{
		level: level,
		file:  file,
		line:  line,
		log:   fmt.Sprintf(format, args...),
	}
	select {
	case l.recCh <- entry:
	default:
		break // avoid blocking...
	}
}

func (l *Logger) loop() {
	for {
		select {
		case rec := <-l.recCh:
			tm := time.Now().Format("2006-01-02 15:04:05")

			line := fmt.Sprintf("%s [%s] %s:%d - %s\n", tm, levelAbbreviation(rec.level), rec.file, rec.line, rec.log)

			if l.f != nil {
				l.f.WriteString(line)
			}
			fmt.Fprint(l.outWriter, line)

		case <-l.closeCh:
			if l.f != nil {
				l.f.Close()
			}
			return
		}
	}
}

func getCallerInfo() callerInfo {
	_, file, ln, ok := runtime.Caller(2)
	if !ok {
		file = "???"
	}
	filename := filepath.Base(file)
	return callerInfo{
		filename: strings.TrimSuffix(filename, filepath.Ext(filename)),
		line:     ln,
	}
}

func levelAbbreviation(level Level) string {
	switch level {
	case DebugLevel:
		return "DBG"
	case InfoLevel:
		return "INF"
	case WarningLevel:
		return "WRN"
	case ErrorLevel:
		return "ERR"
	default:
		// should not be reached
		return ""
	}
}
