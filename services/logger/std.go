package logsvc

import (
	"log"

	"github.com/trezcool/sanaa/core"
)

// StdLogger writes everything to a standard library logger; used by CLIs and
// tests where rollbar reporting is unwanted.
type StdLogger struct {
	std *log.Logger
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std}
}

func (l StdLogger) print(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l StdLogger) Debug(msg string, args ...interface{}) { l.print(msg, args) }
func (l StdLogger) Info(msg string, args ...interface{})  { l.print(msg, args) }
func (l StdLogger) Warn(msg string, args ...interface{})  { l.print(msg, args) }
func (l StdLogger) Error(msg string, args ...interface{}) { l.print(msg, args) }

func (l StdLogger) Fatal(msg string, args ...interface{}) {
	l.print(msg, args)
	l.std.Fatal(msg)
}
