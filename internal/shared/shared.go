// package shared defines shared helpers
package shared

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true}
	return log.NewWithOptions(w, opts)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

// Confirm prompts on w and reads a yes/no answer from r. An empty answer
// counts as yes. It keeps asking until it reads a recognizable answer or r
// is exhausted.
func Confirm(r io.Reader, w io.Writer, question string) bool {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprintf(w, "%s (Y/n): ", question)
		if !scanner.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
