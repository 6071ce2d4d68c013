package codegen

import (
	"testing"

	"compgen/compgen/sources/psql/models"
)

func TestParseSingleBlocks(t *testing.T) {
	raw := "Here you go:\n```jsx\nconst App = () => <div>hi</div>;\n```\n```css\n.app { color: red; }\n```\n"
	snap := Parse(raw)
	if snap.JSX != "const App = () => <div>hi</div>;" {
		t.Errorf("unexpected jsx: %q", snap.JSX)
	}
	if snap.CSS != ".app { color: red; }" {
		t.Errorf("unexpected css: %q", snap.CSS)
	}
}

func TestParseLastBlockWins(t *testing.T) {
	raw := "```jsx\nfirst\n```\nsome prose\n```tsx\nsecond\n```\n```css\nbody {}\n```"
	snap := Parse(raw)
	if snap.JSX != "second" {
		t.Errorf("expected last jsx-category block to win, got %q", snap.JSX)
	}
	if snap.CSS != "body {}" {
		t.Errorf("unexpected css: %q", snap.CSS)
	}
}

func TestParseLanguageAliases(t *testing.T) {
	for _, lang := range []string{"jsx", "javascript", "tsx"} {
		raw := "```" + lang + "\ncode\n```"
		if snap := Parse(raw); snap.JSX != "code" {
			t.Errorf("lang %s: expected jsx %q, got %q", lang, "code", snap.JSX)
		}
	}
}

func TestParseNoBlocks(t *testing.T) {
	snap := Parse("Sorry, I cannot help with that.")
	if snap.JSX != "" || snap.CSS != "" {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestParseIgnoresUnknownLanguages(t *testing.T) {
	raw := "```python\nprint('no')\n```\n```css\n.a{}\n```"
	snap := Parse(raw)
	if snap.JSX != "" {
		t.Errorf("python block should not populate jsx, got %q", snap.JSX)
	}
	if snap.CSS != ".a{}" {
		t.Errorf("unexpected css: %q", snap.CSS)
	}
}

func TestParseTrimsBodies(t *testing.T) {
	raw := "```jsx\n\n  <div />  \n\n```"
	if snap := Parse(raw); snap.JSX != "<div />" {
		t.Errorf("expected trimmed body, got %q", snap.JSX)
	}
}

func TestParseUnclosedFence(t *testing.T) {
	raw := "```jsx\n<div />\n```\n```css\nnever closed"
	snap := Parse(raw)
	if snap.JSX != "<div />" {
		t.Errorf("unexpected jsx: %q", snap.JSX)
	}
	if snap.CSS != "" {
		t.Errorf("unclosed block should be dropped, got %q", snap.CSS)
	}
}

// Round-trip: a reply that embeds a snapshot in valid fences parses back
// to the same snapshot.
func TestParseRoundTrip(t *testing.T) {
	want := models.CodeSnapshot{
		JSX: "export default function Card() {\n  return <div className=\"card\" />;\n}",
		CSS: ".card {\n  border-radius: 8px;\n}",
	}
	raw := "```jsx\n" + want.JSX + "\n```\n\n```css\n" + want.CSS + "\n```\n"
	got := Parse(raw)
	if got != want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}
