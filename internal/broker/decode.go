package broker

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

// node is a minimal element tree; namespaces are ignored and elements are
// matched by local name only.
type node struct {
	name     string
	text     strings.Builder
	children []*node
}

func parseTree(body []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = true

	var root *node
	var stack []*node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

// find returns the first element named local in depth-first order, including n itself.
func (n *node) find(local string) *node {
	if n.name == local {
		return n
	}
	for _, c := range n.children {
		if found := c.find(local); found != nil {
			return found
		}
	}
	return nil
}

// textOf returns the trimmed text of the first element named local below n,
// or "" if there is none.
func (n *node) textOf(local string) string {
	if n == nil {
		return ""
	}
	found := n.find(local)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.text.String())
}

// allText concatenates the text of n and all descendants.
func (n *node) allText() string {
	var b strings.Builder
	var walk func(*node)
	walk = func(x *node) {
		if t := strings.TrimSpace(x.text.String()); t != "" {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t)
		}
		for _, c := range x.children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

var faultElements = []string{"Fault", "Error"}

// Decode parses a Broker response for service. A fault anywhere in the
// document wins; then the response element belonging to service is extracted
// wherever it sits; a document without Body is malformed; any other body
// yields an empty result for service. The returned Result always belongs to
// service.
func Decode(service ServiceID, body []byte) (Result, error) {
	root, err := parseTree(body)
	if err != nil {
		return Result{}, malformedResponse("response is not well-formed XML", err).with(service, "")
	}

	for _, name := range faultElements {
		if fault := root.find(name); fault != nil {
			return Result{}, (&BrokerError{
				Code:    CodeApplicationFault,
				Message: faultReason(fault),
			}).with(service, "")
		}
	}

	if payload := root.find(service.ResponseElement()); payload != nil {
		switch service {
		case PersonLookup:
			return decodePerson(payload), nil
		case CompanyLookup:
			return decodeCompany(payload), nil
		case DigitalMail:
			return decodeMail(payload), nil
		}
	}

	if root.find("Body") == nil {
		return Result{}, malformedResponse("response has no Body element", nil).with(service, "")
	}

	// another service's answer or an unknown element: no data for service
	return emptyResult(service), nil
}

func faultReason(fault *node) string {
	for _, name := range []string{"Text", "Reason", "faultstring", "Message"} {
		if reason := fault.textOf(name); reason != "" {
			return reason
		}
	}
	if reason := fault.allText(); reason != "" {
		return reason
	}
	return "broker returned a fault"
}

func decodePerson(n *node) Result {
	p := &PersonResult{
		CPR:        n.textOf("CPR"),
		FirstName:  n.textOf("FirstName"),
		LastName:   n.textOf("LastName"),
		Address:    n.textOf("Address"),
		PostalCode: n.textOf("PostalCode"),
		City:       n.textOf("City"),
	}
	p.FullName = fullName(p.FirstName, p.LastName)
	return Result{Service: PersonLookup, Person: p}
}

func decodeCompany(n *node) Result {
	return Result{Service: CompanyLookup, Company: &CompanyResult{
		CVR:        n.textOf("CVR"),
		Name:       n.textOf("CompanyName"),
		Address:    n.textOf("Address"),
		PostalCode: n.textOf("PostalCode"),
		City:       n.textOf("City"),
		Status:     n.textOf("Status"),
	}}
}

func decodeMail(n *node) Result {
	m := &MailSendResult{
		MessageID: n.textOf("MessageID"),
		Status:    n.textOf("Status"),
	}
	if code, err := strconv.Atoi(n.textOf("StatusCode")); err == nil {
		m.StatusCode = code
	}
	m.Sent = m.Status == "OK" && m.StatusCode == 200
	return Result{Service: DigitalMail, Mail: m}
}
