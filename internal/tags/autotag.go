package tags

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"quicknotes/internal/logs"
	"quicknotes/internal/notes"
)

// fallbackModel is used when "auto" model resolution fails.
const fallbackModel = "gpt-4o-mini"

// TextGenerator is the external AI text service the AI strategy talks to.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt, model string) (string, error)
	ListModelIDs(ctx context.Context) ([]string, error)
}

// Dispatcher runs a function on the primary execution context. The TUI
// backs it with the program's message loop; synchronous callers pass
// SyncDispatcher.
type Dispatcher func(fn func())

// SyncDispatcher runs the function inline, for CLI use and tests.
func SyncDispatcher(fn func()) { fn() }

var wordSplitter = regexp.MustCompile(`\W+`)

// AutoTagger proposes and applies tags for a note, either from the bundled
// keyword dictionary or from the AI text service. The AI calls run on a
// background goroutine and deliver their results through the dispatcher, so
// all note mutation happens on the primary context.
type AutoTagger struct {
	ops      *Operations
	ai       TextGenerator
	dict     map[string]string
	dispatch Dispatcher
}

// NewAutoTagger creates an auto-tagger. ai may be nil when no AI service is
// configured; the AI paths then report an error instead of calling out.
func NewAutoTagger(ops *Operations, ai TextGenerator, dispatch Dispatcher) *AutoTagger {
	if dispatch == nil {
		dispatch = SyncDispatcher
	}
	return &AutoTagger{
		ops:      ops,
		ai:       ai,
		dict:     LoadKeywordDictionary(),
		dispatch: dispatch,
	}
}

// AssignByKeyword matches words from the note's title and content against
// the keyword dictionary and applies up to limit new tags as one batch.
// Returns the tag names it assigned. Synchronous.
func (a *AutoTagger) AssignByKeyword(n *notes.Note, limit int) []string {
	if limit <= 0 {
		return nil
	}
	combined := strings.ToLower(n.Title + " " + plainText(n.Content))
	var toAssign []string
	seenWords := make(map[string]struct{})
	for _, word := range wordSplitter.Split(combined, -1) {
		if word == "" {
			continue
		}
		if _, ok := seenWords[word]; ok {
			continue
		}
		seenWords[word] = struct{}{}

		tagName, ok := a.dict[word]
		if !ok || n.HasTag(tagName) {
			continue
		}
		already := false
		for _, assigned := range toAssign {
			if strings.EqualFold(assigned, tagName) {
				already = true
				break
			}
		}
		if already {
			continue
		}
		toAssign = append(toAssign, tagName)
		if len(toAssign) >= limit {
			break
		}
	}
	if len(toAssign) > 0 {
		logs.Logger.Debugw("keyword auto-tag", "note", n.Title, "tags", toAssign)
		a.ops.SetTags(n, toAssign)
	}
	return toAssign
}

// AssignByAI asks the AI service for up to limit tags and applies them to
// the note as one batch. The call runs off the caller's goroutine; onTag is
// invoked once per applied tag and onErr on failure, both delivered through
// the dispatcher. A failed call never partially tags the note.
func (a *AutoTagger) AssignByAI(n *notes.Note, limit int, modelKey string, existingTagNames []string, onTag func(string), onErr func(error)) {
	a.requestTags(n, limit, modelKey, existingTagNames, func(tagNames []string) {
		if len(tagNames) == 0 {
			return
		}
		logs.Logger.Debugw("ai auto-tag", "note", n.Title, "tags", tagNames)
		a.ops.SetTags(n, tagNames)
		if onTag != nil {
			for _, name := range tagNames {
				onTag(name)
			}
		}
	}, onErr)
}

// Suggest asks the AI service for tag suggestions without mutating the
// note. The cleaned list is delivered through the dispatcher.
func (a *AutoTagger) Suggest(n *notes.Note, limit int, modelKey string, existingTagNames []string, onSuggestions func([]string), onErr func(error)) {
	a.requestTags(n, limit, modelKey, existingTagNames, onSuggestions, onErr)
}

// requestTags performs the AI call on a background goroutine and hands the
// parsed tag list (or the error) to the dispatcher.
func (a *AutoTagger) requestTags(n *notes.Note, limit int, modelKey string, existingTagNames []string, onTags func([]string), onErr func(error)) {
	if a.ai == nil {
		a.deliverErr(onErr, fmt.Errorf("no AI service configured"))
		return
	}
	prompt := buildPrompt(n, limit, existingTagNames)

	go func() {
		ctx := context.Background()
		model := a.resolveModel(ctx, modelKey)
		reply, err := a.ai.GenerateText(ctx, prompt, model)
		if err != nil {
			logs.Logger.Errorw("ai tagging failed", "note", n.Title, "err", err)
			a.deliverErr(onErr, err)
			return
		}
		tagNames := parseTagList(reply)
		a.dispatch(func() {
			if onTags != nil {
				onTags(tagNames)
			}
		})
	}()
}

func (a *AutoTagger) deliverErr(onErr func(error), err error) {
	if onErr == nil {
		return
	}
	a.dispatch(func() { onErr(err) })
}

// resolveModel maps the configured model key to a concrete model id. "auto"
// picks the first chat-capable model the service reports; any failure there
// falls back to a fixed id rather than failing the tagging call.
func (a *AutoTagger) resolveModel(ctx context.Context, modelKey string) string {
	if !strings.EqualFold(modelKey, "auto") && modelKey != "" {
		return modelKey
	}
	ids, err := a.ai.ListModelIDs(ctx)
	if err != nil {
		logs.Logger.Warnw("model listing failed, using fallback", "err", err)
		return fallbackModel
	}
	for _, id := range ids {
		if strings.HasPrefix(id, "gpt-") || strings.Contains(id, "chat") {
			return id
		}
	}
	return fallbackModel
}

// buildPrompt embeds the existing tag vocabulary, the note text, and the
// limit into the instruction sent to the AI service.
func buildPrompt(n *notes.Note, limit int, existingTagNames []string) string {
	var b strings.Builder
	b.WriteString("system: You are a tag suggestion assistant that outputs a comma-separated list of tag names.\n")
	b.WriteString("Use existing tags when appropriate. Do not explain or output anything other than the tag list.\n")
	fmt.Fprintf(&b, "Existing tags: %s\n", strings.Join(existingTagNames, ", "))
	fmt.Fprintf(&b, "user: Extract up to %d tags from the following text:\n", limit)
	fmt.Fprintf(&b, "Title: %s\n", n.Title)
	fmt.Fprintf(&b, "Content: %s\n", n.Content)
	return b.String()
}

// parseTagList splits a comma-separated reply into trimmed, non-empty tag
// names.
func parseTagList(reply string) []string {
	var out []string
	for _, part := range strings.Split(reply, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// plainText strips markdown structure from note content so tokens reflect
// the words the user wrote, not formatting syntax.
func plainText(markdown string) string {
	source := []byte(markdown)
	if len(bytes.TrimSpace(source)) == 0 {
		return ""
	}
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := node.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			b.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
