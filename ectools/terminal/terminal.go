// Package terminal prints the progress of command line operations.
package terminal

import (
	"fmt"
	"io"
	"os"
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
)

// Output is where messages are printed
var Output io.Writer = os.Stdout

// Error print error
func Error(err error, format string, a ...interface{}) {
	fmt.Fprintf(Output, "%s%s%s\n", red, message(err, format, a...), reset)
}

// Warn print warning
func Warn(format string, a ...interface{}) {
	fmt.Fprintf(Output, "%s%s%s\n", yellow, fmt.Sprintf(format, a...), reset)
}

// Info print information
func Info(format string, a ...interface{}) {
	fmt.Fprintf(Output, "%s\n", fmt.Sprintf(format, a...))
}

func message(err error, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	if err != nil {
		msg = fmt.Sprintf("%s [%s]", msg, err)
	}
	return msg
}
