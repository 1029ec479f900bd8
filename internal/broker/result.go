package broker

import "strings"

type PersonResult struct {
	CPR        string `json:"cpr"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

type CompanyResult struct {
	CVR        string `json:"cvr"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Status     string `json:"status"`
}

type MailSendResult struct {
	MessageID  string `json:"message_id"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Sent       bool   `json:"sent"`
}

// Result is the decoded answer of one Broker call. Exactly one of Person,
// Company and Mail is set, matching Service.
type Result struct {
	Service ServiceID       `json:"service"`
	Person  *PersonResult   `json:"person,omitempty"`
	Company *CompanyResult  `json:"company,omitempty"`
	Mail    *MailSendResult `json:"mail,omitempty"`
}

// Found reports whether the Broker returned an actual record. An empty
// identifying field means "no record", not a parse failure.
func (r Result) Found() bool {
	switch {
	case r.Person != nil:
		return r.Person.FirstName != "" || r.Person.LastName != ""
	case r.Company != nil:
		return r.Company.CVR != "" || r.Company.Name != ""
	case r.Mail != nil:
		return r.Mail.MessageID != ""
	}
	return false
}

// Valid reports whether exactly the variant belonging to Service is populated.
func (r Result) Valid() bool {
	set := 0
	for _, ok := range []bool{r.Person != nil, r.Company != nil, r.Mail != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return false
	}
	switch r.Service {
	case PersonLookup:
		return r.Person != nil
	case CompanyLookup:
		return r.Company != nil
	case DigitalMail:
		return r.Mail != nil
	}
	return false
}

func emptyResult(service ServiceID) Result {
	switch service {
	case PersonLookup:
		return Result{Service: service, Person: &PersonResult{}}
	case CompanyLookup:
		return Result{Service: service, Company: &CompanyResult{}}
	case DigitalMail:
		return Result{Service: service, Mail: &MailSendResult{}}
	}
	return Result{Service: service}
}

// withLookupKey fills the CPR/CVR of a found record from the request when the
// Broker left it out. Empty results stay empty so Found keeps meaning "no record".
func (r Result) withLookupKey(params Parameters) Result {
	if !r.Found() {
		return r
	}
	switch {
	case r.Person != nil && r.Person.CPR == "":
		if v, ok := params.Get(services[PersonLookup].lookupKey); ok {
			p := *r.Person
			p.CPR = v
			r.Person = &p
		}
	case r.Company != nil && r.Company.CVR == "":
		if v, ok := params.Get(services[CompanyLookup].lookupKey); ok {
			c := *r.Company
			c.CVR = v
			r.Company = &c
		}
	}
	return r
}

func fullName(first, last string) string {
	return strings.TrimSpace(strings.Join([]string{first, last}, " "))
}
