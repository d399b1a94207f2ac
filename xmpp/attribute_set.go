/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package xmpp

// Attribute represents an XML node attribute (label=value).
type Attribute struct {
	Label string
	Value string
}

// AttributeSet interface represents a read-only set of XML attributes.
type AttributeSet interface {
	Get(string) string
	Count() int
}

type attributeSet []Attribute

func (as attributeSet) Get(label string) string {
	for _, attr := range as {
		if attr.Label == label {
			return attr.Value
		}
	}
	return ""
}

func (as attributeSet) Count() int {
	return len(as)
}

func (as *attributeSet) setAttribute(label, value string) {
	for i := 0; i < len(*as); i++ {
		if (*as)[i].Label == label {
			(*as)[i].Value = value
			return
		}
	}
	*as = append(*as, Attribute{label, value})
}

func (as *attributeSet) removeAttribute(label string) {
	for i := 0; i < len(*as); i++ {
		if (*as)[i].Label == label {
			*as = append((*as)[:i], (*as)[i+1:]...)
			return
		}
	}
}

func (as *attributeSet) copyFrom(from attributeSet) {
	*as = make([]Attribute, from.Count())
	copy(*as, from)
}
