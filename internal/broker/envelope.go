package broker

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const (
	soapNamespace = "http://www.w3.org/2003/05/soap-envelope"
	wsseNamespace = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	passwordText  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText"
)

// Encode builds the SOAP envelope for one call. Credentials go into a
// WS-Security UsernameToken; each parameter becomes one child of the
// service's request element, in parameter order. All text is escaped by the
// XML encoder.
func Encode(service ServiceID, operation string, params Parameters, creds Credentials) ([]byte, error) {
	if !service.Valid() {
		return nil, invalidArgument("unknown service %q", service).with(service, operation)
	}
	if strings.TrimSpace(operation) == "" {
		return nil, invalidArgument("operation is required").with(service, operation)
	}
	if err := params.validate(); err != nil {
		return nil, invalidArgument("%v", err).with(service, operation)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	w := &envelopeWriter{enc: xml.NewEncoder(&buf)}

	w.start("soap:Envelope",
		xml.Attr{Name: xml.Name{Local: "xmlns:soap"}, Value: soapNamespace},
		xml.Attr{Name: xml.Name{Local: "xmlns:wsse"}, Value: wsseNamespace},
		xml.Attr{Name: xml.Name{Local: "xmlns:svc"}, Value: service.Namespace()},
	)

	w.start("soap:Header")
	w.start("wsse:Security")
	w.start("wsse:UsernameToken")
	w.leaf("wsse:Username", creds.Username)
	w.start("wsse:Password", xml.Attr{Name: xml.Name{Local: "Type"}, Value: passwordText})
	w.text(creds.Password)
	w.end("wsse:Password")
	w.end("wsse:UsernameToken")
	w.end("wsse:Security")
	w.end("soap:Header")

	w.start("soap:Body")
	w.start("svc:" + service.RequestElement())
	for _, p := range params.pairs {
		w.leaf("svc:"+p.Key, p.Value)
	}
	w.end("svc:" + service.RequestElement())
	w.end("soap:Body")
	w.end("soap:Envelope")

	if w.err == nil {
		w.err = w.enc.Flush()
	}
	if w.err != nil {
		return nil, invalidArgument("encode envelope: %v", w.err).with(service, operation)
	}
	return buf.Bytes(), nil
}

// envelopeWriter keeps the first encoder error so the envelope can be written
// without checking every token.
type envelopeWriter struct {
	enc *xml.Encoder
	err error
}

func (w *envelopeWriter) token(t xml.Token) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(t)
}

func (w *envelopeWriter) start(name string, attrs ...xml.Attr) {
	w.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (w *envelopeWriter) end(name string) {
	w.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *envelopeWriter) text(s string) {
	w.token(xml.CharData(s))
}

func (w *envelopeWriter) leaf(name, value string) {
	w.start(name)
	w.text(value)
	w.end(name)
}
