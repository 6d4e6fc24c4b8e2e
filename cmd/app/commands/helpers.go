// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user declines a confirmation prompt.
var ErrCancelled = errors.New("operation cancelled")

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// prompter reads answers from an IOTuple. Prompts go to Writer.
// A single bufio.Reader is kept so buffered input survives between prompts.
type prompter struct {
	io     IOTuple
	reader *bufio.Reader
}

func newPrompter(io IOTuple) *prompter {
	return &prompter{io: io, reader: bufio.NewReader(io.Reader)}
}

// line prompts and returns the trimmed answer.
func (p *prompter) line(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.io.Writer, prompt)
	answer, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// secret prompts for a value without echo when Reader is a terminal.
// Piped input is read one line at a time.
func (p *prompter) secret(prompt string) ([]byte, error) {
	if f, ok := p.io.Reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(p.io.Writer, prompt)
		value, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(p.io.Writer)
		if err != nil {
			return nil, fmt.Errorf("failed to read secret: %w", err)
		}
		return value, nil
	}

	value, err := p.line(prompt)
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (p *prompter) confirm(prompt string) (bool, error) {
	answer, err := p.line(prompt + " (y/N): ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// writeJSON outputs v as indented JSON for machine consumption.
func writeJSON(writer io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}

// validateFormat accepts the output formats every command supports.
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}
