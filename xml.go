package gelbooru

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
)

type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

// decodeXML converts an XML document into the JSON mapping the normalizer
// reads: attributes become "@name" keys, repeated elements become arrays, a
// lone element stays an object and a text-only element becomes a string.
func decodeXML(body []byte) ([]byte, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var root xmlNode
	if err := xml.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	doc, err := json.Marshal(map[string]any{root.XMLName.Local: root.value()})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return doc, nil
}

func (n xmlNode) value() any {
	text := strings.TrimSpace(n.Content)
	if len(n.Attrs) == 0 && len(n.Children) == 0 {
		return text
	}

	m := make(map[string]any, len(n.Attrs)+len(n.Children))
	for _, a := range n.Attrs {
		m["@"+a.Name.Local] = a.Value
	}
	for _, child := range n.Children {
		name := child.XMLName.Local
		v := child.value()
		switch prev := m[name].(type) {
		case nil:
			m[name] = v
		case []any:
			m[name] = append(prev, v)
		default:
			m[name] = []any{prev, v}
		}
	}
	if text != "" && len(n.Children) == 0 {
		m["#text"] = text
	}
	return m
}
