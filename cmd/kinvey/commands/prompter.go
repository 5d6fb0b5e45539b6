package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// terminalPrompter collects credentials from the terminal. It implements
// kinvey.CredentialPrompter.
type terminalPrompter struct{}

func newTerminalPrompter() terminalPrompter {
	return terminalPrompter{}
}

// EmailPassword prompts only for the parts not already supplied. The
// password is read without echo.
func (terminalPrompter) EmailPassword(email, password string) (string, string, error) {
	if email == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("E-mail: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading e-mail: %w", err)
		}

		email = strings.TrimSpace(line)
	}

	if password == "" {
		fmt.Print("Password: ")

		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}

		fmt.Println()

		password = string(bytePassword)
	}

	return email, password, nil
}

// MFAToken collects a 6-digit two-factor token.
func (terminalPrompter) MFAToken() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Two-factor authentication token: ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading two-factor token: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// interactive reports whether stdin is a terminal. Non-interactive runs rely
// on environment-sourced credentials.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
