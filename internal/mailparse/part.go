// Package mailparse turns provider message payloads into plain text and HTML
// bodies with quoted history removed.
package mailparse

import (
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset" // charset decoders for non UTF-8 parts
	"github.com/emersion/go-message/mail"
)

// Part is a provider-neutral node of a multi-part message.
type Part struct {
	MimeType string
	Filename string
	Headers  map[string]string
	Body     []byte
	Parts    []*Part
}

// Header returns a header value by case-insensitive name.
func (p *Part) Header(name string) string {
	if p == nil || p.Headers == nil {
		return ""
	}
	return p.Headers[strings.ToLower(name)]
}

// FindPart walks the tree depth first and returns the first inline part whose
// MIME type matches and whose body is not empty. It returns nil when nothing
// matches.
func FindPart(root *Part, mimeType string) *Part {
	if root == nil {
		return nil
	}
	if root.Filename == "" && len(root.Body) > 0 &&
		strings.EqualFold(root.MimeType, mimeType) {
		return root
	}
	for _, child := range root.Parts {
		if found := FindPart(child, mimeType); found != nil {
			return found
		}
	}
	return nil
}

// Bodies returns the text and HTML renditions of a message. Each one is
// extracted independently; text falls back to the stripped HTML part and HTML
// falls back to the escaped text part.
func Bodies(root *Part) (text, html string) {
	textPart := FindPart(root, "text/plain")
	htmlPart := FindPart(root, "text/html")

	switch {
	case textPart != nil:
		text = string(textPart.Body)
	case htmlPart != nil:
		text = HTMLToText(string(htmlPart.Body))
	}

	switch {
	case htmlPart != nil:
		html = string(htmlPart.Body)
	case textPart != nil:
		html = TextToHTML(string(textPart.Body))
	}

	return text, html
}

// ParseRaw reads an RFC 5322 message into a Part tree. Unknown charsets and
// transfer encodings are tolerated: the raw bytes are kept.
func ParseRaw(r io.Reader) (*Part, error) {
	entity, err := message.Read(r)
	if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
		return nil, err
	}
	return entityToPart(entity)
}

func entityToPart(e *message.Entity) (*Part, error) {
	mediaType, params, _ := e.Header.ContentType()
	if mediaType == "" {
		mediaType = "text/plain"
	}

	p := &Part{
		MimeType: mediaType,
		Headers:  make(map[string]string),
	}

	_, dispParams, _ := e.Header.ContentDisposition()
	p.Filename = dispParams["filename"]
	if p.Filename == "" {
		p.Filename = params["name"]
	}

	fields := e.Header.Fields()
	for fields.Next() {
		key := strings.ToLower(fields.Key())
		if _, seen := p.Headers[key]; seen {
			continue
		}
		value, err := fields.Text()
		if err != nil {
			value = fields.Value()
		}
		p.Headers[key] = value
	}

	if mr := e.MultipartReader(); mr != nil {
		for {
			child, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
				return p, err
			}
			cp, err := entityToPart(child)
			if err != nil {
				return p, err
			}
			p.Parts = append(p.Parts, cp)
		}
		return p, nil
	}

	body, err := io.ReadAll(e.Body)
	if err != nil {
		return p, err
	}
	p.Body = body
	return p, nil
}

// NormalizeAddress extracts the lowercase address from a header value such as
// `"Coach Smith" <Coach@School.edu>`.
func NormalizeAddress(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(s); err == nil {
		return strings.ToLower(addr.Address)
	}
	if i := strings.LastIndex(s, "<"); i >= 0 {
		if j := strings.LastIndex(s, ">"); j > i {
			s = s[i+1 : j]
		}
	}
	return strings.ToLower(strings.TrimSpace(s))
}
