package cli

import (
	"fmt"
	"os"
	"strings"

	"quicknotes/internal/notes"
)

func runNoteCommand(args []string, lib *notes.Library) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "note: missing subcommand")
		return 1
	}

	switch args[0] {
	case "add":
		return runNoteAdd(args[1:], lib)
	case "list":
		return runNoteList(lib)
	case "search":
		return runNoteSearch(args[1:], lib)
	case "delete":
		return runNoteDelete(args[1:], lib)
	default:
		fmt.Fprintf(os.Stderr, "note: unknown subcommand %q\n", args[0])
		return 1
	}
}

func runNoteAdd(args []string, lib *notes.Library) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "note add: title required")
		return 1
	}
	title := args[0]
	content := ""
	if len(args) > 1 {
		content = strings.Join(args[1:], " ")
	}
	n := notes.NewNote(title, content, nil)
	if !lib.AddNote(n) {
		fmt.Fprintf(os.Stderr, "note add: a note titled %q already exists\n", strings.TrimSpace(title))
		return 1
	}
	if len(n.Tags) > 0 {
		fmt.Printf("Added %q [%s]\n", n.Title, strings.Join(n.TagNames(), ", "))
	} else {
		fmt.Printf("Added %q\n", n.Title)
	}
	return 0
}

func runNoteList(lib *notes.Library) int {
	all := lib.Notes()
	if len(all) == 0 {
		fmt.Println("No notes yet.")
		return 0
	}
	printNotes(all)
	return 0
}

func runNoteSearch(args []string, lib *notes.Library) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "note search: query required")
		return 1
	}
	query := strings.Join(args, " ")
	results := lib.Search(query, true, true, true)
	if len(results) == 0 {
		fmt.Printf("No notes matching %q\n", query)
		return 0
	}
	printNotes(results)
	return 0
}

func runNoteDelete(args []string, lib *notes.Library) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "note delete: title required")
		return 1
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	for _, n := range lib.Notes() {
		if strings.EqualFold(strings.TrimSpace(n.Title), title) {
			lib.DeleteNote(n)
			fmt.Printf("Deleted %q\n", n.Title)
			return 0
		}
	}
	fmt.Fprintf(os.Stderr, "note delete: no note titled %q\n", title)
	return 1
}

func printNotes(list []*notes.Note) {
	for _, n := range list {
		marker := " "
		if n.Pinned {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s", marker, n.Title)
		if names := n.TagNames(); len(names) > 0 {
			line += fmt.Sprintf("  [%s]", strings.Join(names, ", "))
		}
		fmt.Println(line)
	}
}
