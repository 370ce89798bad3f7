package cli

import (
	"fmt"
	"os"

	"quicknotes/internal/tags"
)

func runTagCommand(args []string, mgr *tags.Manager) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "tag: missing subcommand")
		return 1
	}

	switch args[0] {
	case "list":
		return runTagList(mgr)
	case "rename":
		return runTagRename(args[1:], mgr)
	case "merge":
		return runTagMerge(args[1:], mgr)
	case "delete":
		return runTagDelete(args[1:], mgr)
	default:
		fmt.Fprintf(os.Stderr, "tag: unknown subcommand %q\n", args[0])
		return 1
	}
}

func runTagList(mgr *tags.Manager) int {
	names := mgr.AllTagNames()
	if len(names) == 0 {
		fmt.Println("No tags in use.")
		return 0
	}
	for _, name := range names {
		count := len(mgr.FilterNotesByTags([]string{name}))
		fmt.Printf("%s (%d)\n", name, count)
	}
	return 0
}

func runTagRename(args []string, mgr *tags.Manager) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "tag rename: expected <old> <new>")
		return 1
	}
	mgr.RenameTag(args[0], args[1])
	fmt.Printf("Renamed %q to %q\n", args[0], args[1])
	return 0
}

func runTagMerge(args []string, mgr *tags.Manager) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "tag merge: expected <target> <source...>")
		return 1
	}
	mgr.MergeTags(args[1:], args[0])
	fmt.Printf("Merged %d tag(s) into %q\n", len(args)-1, args[0])
	return 0
}

func runTagDelete(args []string, mgr *tags.Manager) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "tag delete: expected <name>")
		return 1
	}
	mgr.DeleteTag(args[0])
	fmt.Printf("Deleted tag %q\n", args[0])
	return 0
}
