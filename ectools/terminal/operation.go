package terminal

import (
	"fmt"
	"time"
)

const spinner = `|/-\`

// Operation represents a long running operation
type Operation struct {
	done     chan struct{}
	finished chan struct{}
}

// NewOperation starts a long running operation
func NewOperation(format string, a ...interface{}) *Operation {
	o := &Operation{
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	title := fmt.Sprintf(format, a...)
	spinFrames := []rune(spinner)

	go func() {
		defer close(o.finished)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		pos := 0

		for {
			select {
			case <-o.done:
				return
			case <-ticker.C:
				fmt.Fprintf(Output, "\r  %s%s%s %s ", yellow, title, reset, string(spinFrames[pos%len(spinFrames)]))
				pos++
			}
		}
	}()

	return o
}

// Success informs that the operation is over
func (o *Operation) Success(format string, a ...interface{}) {
	o.finish("✓", green, fmt.Sprintf(format, a...))
}

// Error informs that the operation failed
func (o *Operation) Error(err error, format string, a ...interface{}) {
	o.finish("✗", red, message(err, format, a...))
}

func (o *Operation) finish(symbol string, color string, msg string) {
	close(o.done)
	<-o.finished

	fmt.Fprint(Output, "\033[2K")
	fmt.Fprintf(Output, "\r%s %s%s%s \n", symbol, color, msg, reset)
}
