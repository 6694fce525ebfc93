package format

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"escapes markup", "a<b>c", "a&lt;b&gt;c"},
		{"escapes ampersand", "a & b", "a &amp; b"},
		{"bold", "**x**", "<strong>x</strong>"},
		{"italic", "*x*", "<em>x</em>"},
		{"inline code", "run `go test` now", "run <code>go test</code> now"},
		{"newline", "a\nb", "a<br>b"},
		{"crlf", "a\r\nb", "a<br>b"},
		{
			"code block escapes before wrapping",
			"```\nif a < b {}\n```",
			"<pre><code><br>if a &lt; b {}<br></code></pre>",
		},
		{
			"code block keeps markers literal",
			"```**x** `y`\n```",
			"<pre><code>**x** `y`<br></code></pre>",
		},
		{"empty code block", "``````", "<pre><code></code></pre>"},
		{
			"link",
			"[Go](https://go.dev)",
			`<a href="https://go.dev" target="_blank" rel="noopener noreferrer">Go</a>`,
		},
		{
			"http link",
			"see [docs](http://example.com/a?b=1&c=2)",
			`see <a href="http://example.com/a?b=1&amp;c=2" target="_blank" rel="noopener noreferrer">docs</a>`,
		},
		{"non-http link stays literal", "[x](javascript:alert(1))", "[x](javascript:alert(1))"},
		{"scheme only stays literal", "[x](https://)", "[x](https://)"},
		{
			"link target cannot break out of attribute",
			`[x](https://e.com/"onclick="y)`,
			`<a href="https://e.com/&quot;onclick=&quot;y" target="_blank" rel="noopener noreferrer">x</a>`,
		},
		{
			"link label formatting",
			"[**Go**](https://go.dev)",
			`<a href="https://go.dev" target="_blank" rel="noopener noreferrer"><strong>Go</strong></a>`,
		},
		{"code inside bold", "**bold `code`**", "<strong>bold <code>code</code></strong>"},
		{"bold inside code is literal", "`**not bold**`", "<code>**not bold**</code>"},
		{"italic inside bold", "**a *b* c**", "<strong>a <em>b</em> c</strong>"},
		{"single star is literal", "2 * 3", "2 * 3"},
		{"emphasis does not cross lines", "**a\nb**", "**a<br>b**"},
		{"unpaired backtick", "it`s", "it`s"},
		{"unpaired fence", "```x`", "``<code>x</code>"},
		{"empty inline code is literal", "``", "``"},
		{"unicode passes through", "olá **mundo** 👋", "olá <strong>mundo</strong> 👋"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTML(tt.input))
		})
	}
}

func TestHTMLNeverInjectsMarkup(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"**<script>**",
		"`<img src=x onerror=alert(1)>`",
		"```<iframe>```",
		"[<b>x</b>](https://e.com/<script>)",
		`[x](https://e.com/" onmouseover="alert(1))`,
		"*<style>*\n<svg onload=1>",
		"&lt;script&gt;",
		"[a](http://x)<br>[b](ftp://y)",
	}

	allowed := map[string]bool{"pre": true, "code": true, "strong": true, "em": true, "br": true, "a": true}
	allowedAttrs := map[string]bool{"href": true, "target": true, "rel": true}

	for _, input := range inputs {
		out := HTML(input)
		assert.NotContains(t, strings.ToLower(out), "<script", "input %q", input)

		z := html.NewTokenizer(strings.NewReader(out))
		for {
			tt := z.Next()
			if tt == html.ErrorToken {
				require.ErrorIs(t, z.Err(), io.EOF)
				break
			}
			if tt != html.StartTagToken && tt != html.EndTagToken && tt != html.SelfClosingTagToken {
				continue
			}
			tok := z.Token()
			assert.True(t, allowed[tok.Data], "unexpected tag %q in %q", tok.Data, out)
			for _, attr := range tok.Attr {
				assert.True(t, allowedAttrs[attr.Key], "unexpected attribute %q in %q", attr.Key, out)
			}
		}
	}
}

func TestTokenize(t *testing.T) {
	spans := Tokenize("hi **b** [l](http://x.y)\n`c`")

	kinds := make([]Kind, len(spans))
	for i, s := range spans {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []Kind{KindText, KindBold, KindText, KindLink, KindBreak, KindCode}, kinds)

	assert.Equal(t, "hi ", spans[0].Text)
	require.Len(t, spans[1].Children, 1)
	assert.Equal(t, "b", spans[1].Children[0].Text)
	assert.Equal(t, "http://x.y", spans[3].URL)
	assert.Equal(t, "c", spans[5].Text)

	assert.Nil(t, Tokenize(""))
}

func TestSpanLanguage(t *testing.T) {
	tests := []struct {
		text     string
		wantLang string
		wantBody string
	}{
		{"go\nfmt.Println()\n", "go", "fmt.Println()\n"},
		{"\nx := 1\n", "", "x := 1\n"},
		{"x := 1", "", "x := 1"},
		{"not a tag\nbody", "", "not a tag\nbody"},
	}

	for _, tt := range tests {
		lang, body := Span{Kind: KindCodeBlock, Text: tt.text}.Language()
		assert.Equal(t, tt.wantLang, lang, "text %q", tt.text)
		assert.Equal(t, tt.wantBody, body, "text %q", tt.text)
	}

	lang, body := Span{Kind: KindText, Text: "go\nx"}.Language()
	assert.Empty(t, lang)
	assert.Equal(t, "go\nx", body)
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "a b\nc", Plain(Tokenize("**a** `b`\n[c](https://d)")))
	assert.Equal(t, "x := 1\n", Plain(Tokenize("```go\nx := 1\n```")))
	assert.Equal(t, "", Plain(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "code-block", KindCodeBlock.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
