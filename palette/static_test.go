package palette

import (
	"context"
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
<style>
:root { --primary-color: #123456; --spacing: 8px; }
a { color: red; }
p { margin: 0; }
</style>
<link rel="stylesheet" href="https://cdn.example.com/app.css">
<style>
.btn { background: blue; }
</style>
</head>
<body>
<button class="btn primary" style="color: red; background-color: blue">Save</button>
<button>Cancel</button>
<a href="/x">Home</a>
<div class="color-swatch" style="border-color: green">swatch</div>
<p>This paragraph has quite a lot of text, definitely more than fifty characters in total.</p>
</body>
</html>`

func newTestQuerier(t *testing.T) *StaticQuerier {
	t.Helper()
	q, err := NewStaticQuerier(testPage)
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestStaticCustomProperties(t *testing.T) {
	q := newTestQuerier(t)
	props, err := q.CustomProperties(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if props["--primary-color"] != "#123456" {
		t.Errorf("--primary-color = %q", props["--primary-color"])
	}
	if props["--spacing"] != "8px" {
		t.Errorf("--spacing = %q", props["--spacing"])
	}
}

func TestStaticStyleSheets(t *testing.T) {
	q := newTestQuerier(t)
	sheets, err := q.StyleSheets(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sheets) != 3 {
		t.Fatalf("sheets = %d, want 3", len(sheets))
	}

	// Document order: first <style>, then the external <link>, then the
	// second <style>.
	if len(sheets[0].Rules) != 3 {
		t.Errorf("first sheet rules = %d, want 3", len(sheets[0].Rules))
	}
	if !strings.Contains(sheets[0].Rules[1], "color: red") {
		t.Errorf("rule order broken: %v", sheets[0].Rules)
	}
	if sheets[1].Href != "https://cdn.example.com/app.css" || sheets[1].Err == "" {
		t.Errorf("external sheet should be unreadable: %+v", sheets[1])
	}
	if len(sheets[2].Rules) != 1 {
		t.Errorf("second inline sheet rules = %d, want 1", len(sheets[2].Rules))
	}
}

func TestStaticElementStyles(t *testing.T) {
	q := newTestQuerier(t)
	samples, err := q.ElementStyles(context.Background(),
		[]string{"button", ".btn", `[class*="color"]`}, 5, 50)
	if err != nil {
		t.Fatal(err)
	}

	counts := map[string]int{}
	for _, s := range samples {
		counts[s.Selector]++
	}
	if counts["button"] != 2 {
		t.Errorf("button matches = %d, want 2", counts["button"])
	}
	if counts[".btn"] != 1 {
		t.Errorf(".btn matches = %d, want 1", counts[".btn"])
	}
	if counts[`[class*="color"]`] != 1 {
		t.Errorf(`[class*="color"] matches = %d, want 1`, counts[`[class*="color"]`])
	}

	first := samples[0]
	if first.TagName != "BUTTON" || first.Color != "red" || first.BackgroundColor != "blue" {
		t.Errorf("first sample = %+v", first)
	}
	if first.ClassName != "btn primary" {
		t.Errorf("className = %q", first.ClassName)
	}
}

func TestStaticElementStylesLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 8; i++ {
		sb.WriteString("<button>x</button>")
	}
	sb.WriteString("</body></html>")

	q, err := NewStaticQuerier(sb.String())
	if err != nil {
		t.Fatal(err)
	}
	samples, err := q.ElementStyles(context.Background(), []string{"button"}, 5, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 5 {
		t.Errorf("samples = %d, want 5", len(samples))
	}
}

func TestStaticInvalidSelectorSkipped(t *testing.T) {
	q := newTestQuerier(t)
	samples, err := q.ElementStyles(context.Background(),
		[]string{"div::bad(", "button"}, 5, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range samples {
		if s.Selector != "button" {
			t.Errorf("unexpected sample for selector %q", s.Selector)
		}
	}
	if len(samples) != 2 {
		t.Errorf("samples = %d, want 2 (buttons only)", len(samples))
	}
}

func TestStaticSnippetCapped(t *testing.T) {
	q := newTestQuerier(t)
	samples, err := q.ElementStyles(context.Background(), []string{"p"}, 5, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Fatalf("samples = %d, want 1", len(samples))
	}
	if n := len([]rune(samples[0].Text)); n > 50 {
		t.Errorf("snippet length = %d, want <= 50", n)
	}
}
