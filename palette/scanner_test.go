package palette

import (
	"context"
	"errors"
	"testing"
)

// fakeQuerier returns canned data, or an error per operation.
type fakeQuerier struct {
	props  map[string]string
	sheets []StyleSheet
	styles []ElementSample

	propsErr  error
	sheetsErr error
	stylesErr error
}

func (f *fakeQuerier) CustomProperties(context.Context) (map[string]string, error) {
	return f.props, f.propsErr
}

func (f *fakeQuerier) StyleSheets(context.Context) ([]StyleSheet, error) {
	return f.sheets, f.sheetsErr
}

func (f *fakeQuerier) ElementStyles(context.Context, []string, int, int) ([]ElementSample, error) {
	return f.styles, f.stylesErr
}

func TestScanAggregates(t *testing.T) {
	q := &fakeQuerier{
		props: map[string]string{
			"--primary-color": "#123456",
			"--spacing":       "4px",
		},
		sheets: []StyleSheet{
			{Rules: []string{"a { color: red; }", "p { margin: 0; }"}},
		},
		styles: []ElementSample{
			{Selector: "button", TagName: "BUTTON", Color: "rgb(0, 0, 0)"},
		},
	}

	res, err := NewScanner(Config{}).Scan(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.CSSVariables) != 1 || res.CSSVariables["--primary-color"] != "#123456" {
		t.Errorf("variables = %v", res.CSSVariables)
	}
	if len(res.ColorRules) != 1 || res.ColorRules[0].Source != "inline" {
		t.Errorf("rules = %v", res.ColorRules)
	}
	if len(res.ElementColors) != 1 {
		t.Errorf("samples = %v", res.ElementColors)
	}
}

func TestScanCapsSamplesPerSelector(t *testing.T) {
	var styles []ElementSample
	for i := 0; i < 9; i++ {
		styles = append(styles, ElementSample{Selector: "button"})
	}
	styles = append(styles, ElementSample{Selector: "a"})

	res, err := NewScanner(Config{}).Scan(context.Background(), &fakeQuerier{styles: styles})
	if err != nil {
		t.Fatal(err)
	}

	counts := map[string]int{}
	for _, s := range res.ElementColors {
		counts[s.Selector]++
	}
	if counts["button"] != 5 {
		t.Errorf("button samples = %d, want 5", counts["button"])
	}
	if counts["a"] != 1 {
		t.Errorf("a samples = %d, want 1", counts["a"])
	}
}

func TestScanQueryFailureAborts(t *testing.T) {
	boom := errors.New("evaluation failed")
	tests := []struct {
		name string
		q    *fakeQuerier
	}{
		{"properties", &fakeQuerier{propsErr: boom}},
		{"stylesheets", &fakeQuerier{sheetsErr: boom}},
		{"elements", &fakeQuerier{stylesErr: boom}},
	}
	for _, tt := range tests {
		res, err := NewScanner(Config{}).Scan(context.Background(), tt.q)
		if err == nil || !errors.Is(err, boom) {
			t.Errorf("%s: err = %v, want wrapped %v", tt.name, err, boom)
		}
		if res != nil {
			t.Errorf("%s: expected no partial result", tt.name)
		}
	}
}

func TestScanUnreadableSheetContributesNothing(t *testing.T) {
	q := &fakeQuerier{
		sheets: []StyleSheet{
			{Href: "https://x.test/a.css", Err: "SecurityError"},
			{Rules: []string{"b { border: 0; }"}},
		},
	}
	res, err := NewScanner(Config{}).Scan(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.ColorRules) != 1 || res.ColorRules[0].Source != "inline" {
		t.Errorf("rules = %v, want only the inline sheet's rule", res.ColorRules)
	}
}
