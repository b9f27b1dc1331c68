package nos

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Each invokes fn for every element named name in text, in document order.
// Matching elements may appear at any depth; an empty text has no elements.
func Each(text string, name xml.Name, fn func(dec *xml.Decoder, start *xml.StartElement) error) error {
	dec := xml.NewDecoder(strings.NewReader(text))
	for {
		token, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "failed to parse %s", name.Local)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name != name {
			continue
		}
		if err = fn(dec, &start); err != nil {
			return errors.Wrapf(err, "failed to decode %s", name.Local)
		}
	}
}
