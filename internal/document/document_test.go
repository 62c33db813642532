package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  Acme   Widgets </title>
  <meta name="description" content="Widgets for   everyone">
  <link rel="shortcut icon" href="/static/icon.png">
  <link rel="stylesheet" href="/css/main.css">
  <link rel="stylesheet" href="https://cdn.example.net/theme.css#v2">
  <link rel="stylesheet" href="/css/main.css">
  <link rel="preload" href="/font.woff2">
  <link rel="stylesheet" href="javascript:alert(1)">
  <style>body { color: #333; }</style>
  <style>   </style>
</head>
<body>
  <div style="margin: 8px">hello</div>
  <p style="">empty</p>
  <a href="../about#team">About</a>
</body>
</html>`

func TestParse_Metadata(t *testing.T) {
	doc, err := Parse(samplePage, "https://acme.example/products/index.html")
	require.NoError(t, err)

	assert.Equal(t, "Acme Widgets", doc.Title())
	assert.Equal(t, "Widgets for everyone", doc.MetaDescription())
	assert.Equal(t, "https://acme.example/static/icon.png", doc.FaviconURL())
}

func TestParse_RejectsRelativePageURL(t *testing.T) {
	_, err := Parse(samplePage, "/relative/path")
	assert.Error(t, err)
}

func TestStylesheetHrefs(t *testing.T) {
	doc, err := Parse(samplePage, "https://acme.example/products/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://acme.example/css/main.css",
		"https://cdn.example.net/theme.css",
	}, doc.StylesheetHrefs(5))

	assert.Len(t, doc.StylesheetHrefs(1), 1)
	assert.Empty(t, doc.StylesheetHrefs(0))
}

func TestInlineStylesAndAttributes(t *testing.T) {
	doc, err := Parse(samplePage, "https://acme.example/")
	require.NoError(t, err)

	assert.Equal(t, []string{"body { color: #333; }"}, doc.InlineStyleBlocks())
	assert.Equal(t, []string{"margin: 8px"}, doc.StyleAttributes())
}

func TestResolveURL(t *testing.T) {
	doc, err := Parse(samplePage, "https://acme.example/products/list")
	require.NoError(t, err)

	tests := []struct {
		href string
		want string
		ok   bool
	}{
		{"../about#team", "https://acme.example/about", true},
		{"style.css", "https://acme.example/products/style.css", true},
		{"//cdn.example.net/a.css", "https://cdn.example.net/a.css", true},
		{"mailto:hi@acme.example", "", false},
		{"data:text/css,body{}", "", false},
		{"#top", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		got, ok := doc.ResolveURL(tt.href)
		assert.Equal(t, tt.ok, ok, tt.href)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.href)
		}
	}
}

func TestBaseHref(t *testing.T) {
	page := `<html><head><base href="https://static.example/assets/"></head><body></body></html>`
	doc, err := Parse(page, "https://acme.example/")
	require.NoError(t, err)

	got, ok := doc.ResolveURL("logo.svg")
	require.True(t, ok)
	assert.Equal(t, "https://static.example/assets/logo.svg", got)
}

func TestEmptyDocument(t *testing.T) {
	doc, err := Parse("", "https://acme.example/")
	require.NoError(t, err)

	assert.Equal(t, "", doc.Title())
	assert.Equal(t, "", doc.MetaDescription())
	assert.Equal(t, "https://acme.example/favicon.ico", doc.FaviconURL())
	assert.Empty(t, doc.StylesheetHrefs(5))
	assert.NotNil(t, doc.InlineStyleBlocks())
	assert.NotNil(t, doc.StyleAttributes())
	assert.Equal(t, 0, doc.Find("[[invalid").Length())
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\tb   c "))
	assert.Equal(t, "", CleanText(" \n "))
}
