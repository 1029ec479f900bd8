package broker

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Param is one key/value pair of a request.
type Param struct {
	Key   string
	Value string
}

// Parameters is an ordered, flat bag of request parameters. The zero value is
// an empty bag. A Parameters value is never mutated after construction.
type Parameters struct {
	pairs []Param
}

// NewParameters builds a bag from alternating keys and values. A trailing key
// without a value gets the empty string.
func NewParameters(kv ...string) Parameters {
	pairs := make([]Param, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		p := Param{Key: kv[i]}
		if i+1 < len(kv) {
			p.Value = kv[i+1]
		}
		pairs = append(pairs, p)
	}
	return Parameters{pairs: pairs}
}

// ParametersFromMap builds a bag from a map, ordered by key.
func ParametersFromMap(m map[string]string) Parameters {
	pairs := make([]Param, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Param{Key: k, Value: v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return Parameters{pairs: pairs}
}

func (p Parameters) Len() int {
	return len(p.pairs)
}

// Get returns the first value stored under key.
func (p Parameters) Get(key string) (string, bool) {
	for _, pair := range p.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}

// Pairs returns a copy of the pairs in insertion order.
func (p Parameters) Pairs() []Param {
	out := make([]Param, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// Map returns the parameters as a plain map.
func (p Parameters) Map() map[string]string {
	m := make(map[string]string, len(p.pairs))
	for _, pair := range p.pairs {
		if _, seen := m[pair.Key]; !seen {
			m[pair.Key] = pair.Value
		}
	}
	return m
}

// canonical returns the pairs sorted by key (stable for duplicate keys).
func (p Parameters) canonical() []Param {
	out := p.Pairs()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (p Parameters) validate() error {
	for _, pair := range p.pairs {
		if !isXMLName(pair.Key) {
			return fmt.Errorf("parameter name %q is not a valid element name", pair.Key)
		}
		if !isXMLText(pair.Value) {
			return fmt.Errorf("parameter %q contains characters that cannot be sent in XML", pair.Key)
		}
	}
	return nil
}

// isXMLText reports whether every rune of s is valid UTF-8 inside the XML 1.0
// Char production. The encoder would otherwise swap such runes for U+FFFD.
func isXMLText(s string) bool {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return false
			}
		}
		switch {
		case r == 0x09 || r == 0x0A || r == 0x0D:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

// isXMLName reports whether s can be used as an unprefixed element name.
func isXMLName(s string) bool {
	if s == "" || strings.ContainsRune(s, ':') || strings.HasPrefix(strings.ToLower(s), "xml") {
		return false
	}
	d := xml.NewDecoder(strings.NewReader("<" + s + "/>"))
	tok, err := d.Token()
	if err != nil {
		return false
	}
	start, ok := tok.(xml.StartElement)
	return ok && start.Name.Local == s && len(start.Attr) == 0
}
