package guard

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/briantully/acquia-cli/internal/domain"
)

// PolicyViolationError indicates a preprod command targeted the
// production environment.
type PolicyViolationError struct {
	Command     string
	Environment string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("%s may not target the %s environment; use the prod variant of the command", e.Command, e.Environment)
}

// RequireNonProd rejects a preprod-flavored command aimed at the
// production environment. Evaluated before any remote call is issued.
func RequireNonProd(command, envName string) error {
	if domain.KindOf(envName) == domain.Production {
		return &PolicyViolationError{Command: command, Environment: envName}
	}
	return nil
}

// Confirmer asks the operator to approve a destructive operation.
// Declining is not an error: callers treat a false answer as a clean
// no-op.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// TerminalConfirmer reads a yes/no answer from the operator.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c TerminalConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// AlwaysConfirm approves without asking, for --yes style flags.
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(string) (bool, error) { return true, nil }
