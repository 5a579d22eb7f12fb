// Package portal wires the session gate, view controller, dispatchers and
// renderer into the two interactive dashboards.
package portal

import (
	"fmt"
	"io"

	"github.com/frahmantamala/expense-dashboard/internal/message"
)

func printMessage(out io.Writer, text string, success bool) {
	tag := "error"
	if success {
		tag = "ok"
	}
	fmt.Fprintf(out, "[%s] %s\n", tag, text)
}

// messageSink prints region changes as they happen; clears are silent because
// a terminal transcript has nothing to erase.
func messageSink(out io.Writer) func(*message.Message) {
	return func(m *message.Message) {
		if m == nil {
			return
		}
		printMessage(out, m.Text, m.Kind == message.KindSuccess)
	}
}
