package cli

import (
	"fmt"
	"os"
	"strings"

	"quicknotes/internal/config"
)

func runConfigCommand(args []string, secrets *config.Secrets) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "config: missing subcommand")
		return 1
	}

	switch args[0] {
	case "set-key":
		return runConfigSetKey(args[1:], secrets)
	default:
		fmt.Fprintf(os.Stderr, "config: unknown subcommand %q\n", args[0])
		return 1
	}
}

func runConfigSetKey(args []string, secrets *config.Secrets) int {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(os.Stderr, "config set-key: expected <api-key>")
		return 1
	}
	if err := secrets.SetAPIKey(strings.TrimSpace(args[0])); err != nil {
		fmt.Fprintf(os.Stderr, "config set-key: %v\n", err)
		return 1
	}
	fmt.Println("API key stored")
	return 0
}
