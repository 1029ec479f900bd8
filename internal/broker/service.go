package broker

import "fmt"

// ServiceID identifies one of the Broker services this client can talk to.
type ServiceID string

const (
	PersonLookup  ServiceID = "PersonLookup"
	CompanyLookup ServiceID = "CompanyLookup"
	DigitalMail   ServiceID = "DigitalMail"
)

// Wire namespaces, one per service.
const (
	NamespacePersonLookup  = "urn:oio:serviceplatform:cpr:personlookup:1"
	NamespaceCompanyLookup = "urn:oio:serviceplatform:cvr:companylookup:1"
	NamespaceDigitalMail   = "urn:oio:serviceplatform:digitalpost:sendmessage:1"
)

type serviceDef struct {
	namespace    string
	requestName  string
	responseName string
	lookupKey    string
}

var services = map[ServiceID]serviceDef{
	PersonLookup: {
		namespace:    NamespacePersonLookup,
		requestName:  "PersonLookupRequest",
		responseName: "PersonLookupResponse",
		lookupKey:    "cpr",
	},
	CompanyLookup: {
		namespace:    NamespaceCompanyLookup,
		requestName:  "CompanyLookupRequest",
		responseName: "CompanyLookupResponse",
		lookupKey:    "cvr",
	},
	DigitalMail: {
		namespace:    NamespaceDigitalMail,
		requestName:  "SendMessageRequest",
		responseName: "SendMessageResponse",
	},
}

// ParseServiceID maps a service name to its ServiceID.
func ParseServiceID(name string) (ServiceID, error) {
	id := ServiceID(name)
	if !id.Valid() {
		return "", &BrokerError{
			Code:    CodeInvalidArgument,
			Message: fmt.Sprintf("unknown service %q", name),
		}
	}
	return id, nil
}

func (s ServiceID) Valid() bool {
	_, ok := services[s]
	return ok
}

func (s ServiceID) String() string {
	return string(s)
}

// RequestElement is the name of the body element wrapping the request parameters.
func (s ServiceID) RequestElement() string {
	return services[s].requestName
}

// ResponseElement is the name of the body element the Broker answers with.
func (s ServiceID) ResponseElement() string {
	return services[s].responseName
}

func (s ServiceID) Namespace() string {
	return services[s].namespace
}
