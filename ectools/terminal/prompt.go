package terminal

import (
	"fmt"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// ReadPassword prompts for a secret without echoing it
func ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for a password, stdin is not a terminal")
	}

	fmt.Fprint(Output, prompt)
	b, err := terminal.ReadPassword(fd)
	fmt.Fprintln(Output)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
