package observe

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// ConsoleObserver writes human-readable progress to the standard
// logger. When stdout is not a terminal (CI, piped output) it prints
// the full field set instead of the compact form.
type ConsoleObserver struct {
	contextFields map[string]string
	verbose       bool
}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
		verbose:       !isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	var b strings.Builder
	if event.Node != "" {
		fmt.Fprintf(&b, "[%s] ", event.Node)
	}
	b.WriteString(string(event.Type))
	if event.Message != "" {
		b.WriteString(": ")
		b.WriteString(event.Message)
	}
	if event.Resource != "" {
		fmt.Fprintf(&b, " (%s)", event.Resource)
	}

	if o.verbose {
		for _, k := range sortedKeys(o.contextFields, event.Fields) {
			v, ok := event.Fields[k]
			if !ok {
				v = o.contextFields[k]
			}
			fmt.Fprintf(&b, " %s=%s", k, v)
		}
	}

	log.Print(b.String())
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &ConsoleObserver{contextFields: merged, verbose: o.verbose}
}

func sortedKeys(maps ...map[string]string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range maps {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
