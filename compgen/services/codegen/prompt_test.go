package codegen

import (
	"strings"
	"testing"

	"compgen/compgen/sources/psql/models"
)

func TestComposePromptCreate(t *testing.T) {
	p := ComposePrompt("a pricing card", models.CodeSnapshot{})
	if !strings.Contains(p, "a pricing card") {
		t.Errorf("prompt should embed the request, got %q", p)
	}
	if strings.Contains(p, "Current JSX") {
		t.Errorf("create prompt must not reference current code, got %q", p)
	}
}

func TestComposePromptModify(t *testing.T) {
	existing := models.CodeSnapshot{JSX: "<div/>", CSS: ".x { color: blue; }"}
	p := ComposePrompt("make it green", existing)
	if !strings.Contains(p, "Current JSX") {
		t.Errorf("modify prompt should carry a Current JSX section, got %q", p)
	}
	if !strings.Contains(p, "<div/>") || !strings.Contains(p, ".x { color: blue; }") {
		t.Errorf("existing code must be embedded verbatim, got %q", p)
	}
	if !strings.Contains(p, "make it green") {
		t.Errorf("prompt should embed the request, got %q", p)
	}
}

func TestComposePromptWhitespaceJSXIsCreate(t *testing.T) {
	p := ComposePrompt("a button", models.CodeSnapshot{JSX: "   \n\t", CSS: ""})
	if strings.Contains(p, "Current JSX") {
		t.Errorf("whitespace-only jsx should compose a create prompt, got %q", p)
	}
}

// Compose then parse: the embedded code survives the fenced round trip, so
// a model echoing the blocks back yields the identical snapshot.
func TestComposePromptRoundTripsThroughParse(t *testing.T) {
	existing := models.CodeSnapshot{JSX: "<button>Go</button>", CSS: "button { margin: 0; }"}
	got := Parse(ComposePrompt("noop", existing))
	if got != existing {
		t.Errorf("got %+v, want %+v", got, existing)
	}
}
