package mailparse

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var quoteClasses = []string{"gmail_quote", "gmail_attr", "yahoo_quoted", "moz-cite-prefix", "protonmail_quote"}

var quoteIDs = []string{"divRplyFwdMsg", "appendonsend"}

var blankRun = regexp.MustCompile(`\n{3,}`)

// StripQuotedHTML removes block quotes and client-specific quote containers
// and returns the remaining body markup. Unparseable input is returned as is.
func StripQuotedHTML(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	doc, err := nethtml.Parse(strings.NewReader(src))
	if err != nil {
		return src
	}

	removeQuotes(doc)

	body := findElement(doc, atom.Body)
	if body == nil {
		return src
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := nethtml.Render(&buf, c); err != nil {
			return src
		}
	}
	return strings.TrimSpace(buf.String())
}

func removeQuotes(n *nethtml.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isQuote(c) {
			n.RemoveChild(c)
		} else {
			removeQuotes(c)
		}
		c = next
	}
}

func isQuote(n *nethtml.Node) bool {
	if n.Type != nethtml.ElementNode {
		return false
	}
	if n.DataAtom == atom.Blockquote {
		return true
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "class":
			for _, class := range strings.Fields(a.Val) {
				for _, q := range quoteClasses {
					if class == q {
						return true
					}
				}
			}
		case "id":
			for _, q := range quoteIDs {
				if a.Val == q {
					return true
				}
			}
		}
	}
	return false
}

func findElement(n *nethtml.Node, a atom.Atom) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// HTMLToText renders markup as plain text, breaking lines at block elements.
func HTMLToText(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	doc, err := nethtml.Parse(strings.NewReader(src))
	if err != nil {
		return strings.TrimSpace(src)
	}

	var b strings.Builder
	writeText(&b, doc)

	out := strings.ReplaceAll(b.String(), "\u00a0", " ")
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	out = blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out)
}

func writeText(b *strings.Builder, n *nethtml.Node) {
	switch n.Type {
	case nethtml.TextNode:
		words := strings.Fields(n.Data)
		if len(words) == 0 {
			if n.Data != "" {
				b.WriteString(" ")
			}
			return
		}
		if strings.TrimLeft(n.Data, " \t\r\n") != n.Data {
			b.WriteString(" ")
		}
		b.WriteString(strings.Join(words, " "))
		if strings.TrimRight(n.Data, " \t\r\n") != n.Data {
			b.WriteString(" ")
		}
		return
	case nethtml.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Title:
			return
		case atom.Br:
			b.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type == nethtml.ElementNode {
		switch n.DataAtom {
		case atom.P, atom.Div, atom.Li, atom.Tr, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Blockquote, atom.Pre:
			b.WriteString("\n")
		}
	}
}

// TextToHTML wraps plain text in a preformatted block.
func TextToHTML(text string) string {
	if text == "" {
		return ""
	}
	return "<pre>" + html.EscapeString(text) + "</pre>"
}
