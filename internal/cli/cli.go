package cli

import (
	"fmt"
	"os"

	"quicknotes/internal/config"
	"quicknotes/internal/notes"
	"quicknotes/internal/tags"
)

// Run executes the CLI with the given arguments.
// The first argument should be the namespace ("note", "tag" or "config").
func Run(args []string, lib *notes.Library, mgr *tags.Manager, secrets *config.Secrets) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	namespace := args[0]
	subArgs := args[1:]

	switch namespace {
	case "note":
		return runNoteCommand(subArgs, lib)
	case "tag":
		return runTagCommand(subArgs, mgr)
	case "config":
		return runConfigCommand(subArgs, secrets)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", namespace)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(`Usage: quicknotes [command]

Running without a command opens the interactive UI.

Commands:
  note add <title> [content]     Add a note (auto-tagged per settings)
  note list                      List all notes
  note search <query>            Search titles, content, and tags
  note delete <title>            Delete a note by title
  tag list                       List all tags in use
  tag rename <old> <new>         Rename a tag everywhere
  tag merge <target> <src...>    Merge source tags into target
  tag delete <name>              Remove a tag everywhere
  config set-key <api-key>       Store the OpenAI API key for AI tagging`)
}
