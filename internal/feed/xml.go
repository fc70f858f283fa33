// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

// tagPattern matches runs of characters not allowed in the published
// element names.
var tagPattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeTag makes an XML-safe element name from a column header while
// keeping it readable for Power Query consumers. Forbidden character runs
// become underscores; names that do not start with an ASCII letter get a
// "col_" prefix.
func sanitizeTag(name string) string {
	s := tagPattern.ReplaceAllString(strings.TrimSpace(name), "_")
	if s == "" || !isASCIILetter(s[0]) {
		s = "col_" + s
	}
	return s
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// WriteXML writes the table as an <items> document with one <item>
// element per row, indented, with a UTF-8 declaration.
func WriteXML(t *types.Table, w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	tags := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		tags[i] = sanitizeTag(col)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	tokens := make([]xml.Token, 0, 2+len(t.Rows)*(2+3*len(tags)))
	root := xml.StartElement{Name: xml.Name{Local: "items"}}
	tokens = append(tokens, root)
	for _, row := range t.Rows {
		item := xml.StartElement{Name: xml.Name{Local: "item"}}
		tokens = append(tokens, item)
		for i, tag := range tags {
			el := xml.StartElement{Name: xml.Name{Local: tag}}
			tokens = append(tokens,
				el,
				xml.CharData(row[i]),
				xml.EndElement{Name: el.Name})
		}
		tokens = append(tokens, xml.EndElement{Name: item.Name})
	}
	tokens = append(tokens, xml.EndElement{Name: root.Name})

	for _, tok := range tokens {
		if err := enc.EncodeToken(tok); err != nil {
			return fmt.Errorf("encoding XML: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding XML: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}
