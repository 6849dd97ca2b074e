package main

import (
	"strings"
	"testing"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

func TestHTMLMinification(t *testing.T) {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)

	input := `<html>
	<head>
		<title>Genedle</title>
	</head>
	<body>
		<div class="tile"> T </div>
	</body>
</html>`
	expected := `<title>Genedle</title><div class="tile">T</div>`

	var b strings.Builder
	if err := m.Minify("text/html", &b, strings.NewReader(input)); err != nil {
		t.Fatalf("HTML minification failed: %v", err)
	}
	got := strings.ReplaceAll(b.String(), "\n", "")
	if got != expected {
		t.Errorf("HTML minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

func TestCSSMinification(t *testing.T) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)

	input := `
		.tile.correct {
			background: #538d4e;
			border-width: 0  ;
		}
	`
	expected := `.tile.correct{background:#538d4e;border-width:0}`

	var b strings.Builder
	if err := m.Minify("text/css", &b, strings.NewReader(input)); err != nil {
		t.Fatalf("CSS minification failed: %v", err)
	}
	if got := b.String(); got != expected {
		t.Errorf("CSS minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

func TestJSMinification(t *testing.T) {
	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)

	input := `
		function score(word, bonus) {
			return word.length + bonus;
		}
	`

	var b strings.Builder
	if err := m.Minify("application/javascript", &b, strings.NewReader(input)); err != nil {
		t.Fatalf("JS minification failed: %v", err)
	}
	got := b.String()
	if !strings.HasPrefix(got, "function score(") {
		t.Errorf("JS minification lost the function: %q", got)
	}
	if len(got) >= len(input) || strings.ContainsAny(got, "\n\t") {
		t.Errorf("JS was not minified: %q", got)
	}
}
