package logger

import (
	"log"

	"github.com/fatih/color"
)

// Logger wraps the standard logger with colored levels.
// One instance gets passed around so tests can run quiet.
type Logger struct {
	Verbose bool
}

func New(verbose bool) *Logger {
	return &Logger{Verbose: verbose}
}

// Creates a standard log (use it for nonharmful and useful informations)
func (l *Logger) Log(format string, a ...interface{}) {
	log.Printf(format, a...)
}

// Sends a warn (use it for pottential problem)
func (l *Logger) Warn(format string, a ...interface{}) {
	color.Set(color.FgYellow)
	log.Printf("[WARN]: "+format, a...)
	color.Unset()
}

// Sends an error (use it to inform about a real problem with a system but with no need to stop the service)
func (l *Logger) Err(format string, a ...interface{}) {
	color.Set(color.FgHiRed)
	log.Printf("[ERR]: "+format, a...)
	color.Unset()
}

// We are fucked
func (l *Logger) Fatal(format string, a ...interface{}) {
	color.Set(color.FgRed)
	log.Fatalf("[FATAL]: "+format, a...)
	color.Unset()
}

// Warn with a source tag (handler or subsystem name)
func (l *Logger) SWarn(tag, format string, a ...interface{}) {
	l.Warn("["+tag+"] "+format, a...)
}

// Err with a source tag
func (l *Logger) SErr(tag, format string, a ...interface{}) {
	l.Err("["+tag+"] "+format, a...)
}

// Logs if verbose flag is true
func (l *Logger) LogV(format string, a ...interface{}) {
	if l.Verbose {
		l.Log(format, a...)
	}
}
