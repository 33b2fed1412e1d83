package devices

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shoebox/internal/services"
)

// ShortNames is the slice of the catalog the prompt needs to reject short
// names that are already assigned.
type ShortNames interface {
	ShortNameTaken(ctx context.Context, shortName string) (bool, error)
}

// TerminalResolver classifies devices by prompting on a terminal. It refuses
// to run when stdin is not a TTY so unattended scans fail fast instead of
// hanging on a prompt nobody will answer.
type TerminalResolver struct {
	in         io.Reader
	out        io.Writer
	names      ShortNames
	requireTTY bool
}

// NewTerminalResolver builds a resolver reading from stdin and writing to
// stderr.
func NewTerminalResolver(names ShortNames) *TerminalResolver {
	return &TerminalResolver{
		in:         os.Stdin,
		out:        os.Stderr,
		names:      names,
		requireTTY: true,
	}
}

// NewPromptResolver builds a resolver over explicit streams, used by tests.
func NewPromptResolver(in io.Reader, out io.Writer, names ShortNames) *TerminalResolver {
	return &TerminalResolver{in: in, out: out, names: names}
}

// Classify collects a unique short name and a description for an unseen
// device model, re-prompting until the user confirms.
func (r *TerminalResolver) Classify(ctx context.Context, deviceMake, model string) (string, string, error) {
	if r.requireTTY && !stdinIsTerminal() {
		return "", "", services.Wrap(services.ErrConfiguration, "devices", "classify",
			fmt.Sprintf("device model %q is unregistered and stdin is not a terminal; run a scan interactively to classify it", model), nil)
	}

	reader := bufio.NewReader(r.in)
	suggested := suggestDescription(deviceMake, model)

	for {
		fmt.Fprintf(r.out, "\nNew device detected.\n  Make:  %s\n  Model: %s\n", deviceMake, model)

		shortName, err := r.promptShortName(ctx, reader)
		if err != nil {
			return "", "", err
		}

		fmt.Fprintf(r.out, "Description [%s]: ", suggested)
		description, err := readLine(reader)
		if err != nil {
			return "", "", err
		}
		if description == "" {
			description = suggested
		}

		fmt.Fprintf(r.out, "Register %q as short name %q (%s)? [Y/n]: ", model, shortName, description)
		answer, err := readLine(reader)
		if err != nil {
			return "", "", err
		}
		switch strings.ToLower(answer) {
		case "", "y", "yes":
			return shortName, description, nil
		}
	}
}

func (r *TerminalResolver) promptShortName(ctx context.Context, reader *bufio.Reader) (string, error) {
	for {
		fmt.Fprint(r.out, "Short name (used in file names): ")
		value, err := readLine(reader)
		if err != nil {
			return "", err
		}
		shortName := strings.ToLower(value)
		if msg := validateShortName(shortName); msg != "" {
			fmt.Fprintf(r.out, "%s\n", msg)
			continue
		}
		taken, err := r.names.ShortNameTaken(ctx, shortName)
		if err != nil {
			return "", err
		}
		if taken {
			fmt.Fprintf(r.out, "short name %q is already assigned to another device\n", shortName)
			continue
		}
		return shortName, nil
	}
}

func validateShortName(shortName string) string {
	if shortName == "" {
		return "short name must not be empty"
	}
	for _, r := range shortName {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "short name may only contain letters, digits, '-' and '_'"
		}
	}
	return ""
}

func suggestDescription(deviceMake, model string) string {
	caser := cases.Title(language.English)
	combined := strings.TrimSpace(deviceMake + " " + model)
	return caser.String(strings.ToLower(combined))
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
