package broker

import "context"

// MailMessage is the payload of a digital mail dispatch.
type MailMessage struct {
	RecipientCPR string
	SenderID     string
	Subject      string
	Body         string
}

func (m MailMessage) parameters() Parameters {
	return NewParameters(
		"RecipientCPR", m.RecipientCPR,
		"SenderID", m.SenderID,
		"Subject", m.Subject,
		"MessageBody", m.Body,
	)
}

// LookupPerson resolves a citizen by CPR. A nil result with a nil error means
// the Broker has no record.
func (c *Client) LookupPerson(ctx context.Context, cpr string, opts RequestOptions) (*PersonResult, error) {
	result, err := c.Request(ctx, PersonLookup, OperationPersonLookup, NewParameters("cpr", cpr), opts)
	if err != nil {
		return nil, err
	}
	if !result.Found() {
		return nil, nil
	}
	return result.Person, nil
}

// LookupCompany resolves a company by CVR. A nil result with a nil error means
// the Broker has no record.
func (c *Client) LookupCompany(ctx context.Context, cvr string, opts RequestOptions) (*CompanyResult, error) {
	result, err := c.Request(ctx, CompanyLookup, OperationCompanyLookup, NewParameters("cvr", cvr), opts)
	if err != nil {
		return nil, err
	}
	if !result.Found() {
		return nil, nil
	}
	return result.Company, nil
}

// SendMessage dispatches digital mail. Sends are never served from the cache.
func (c *Client) SendMessage(ctx context.Context, msg MailMessage) (*MailSendResult, error) {
	result, err := c.Request(ctx, DigitalMail, OperationSendMessage, msg.parameters(), RequestOptions{BypassCache: true})
	if err != nil {
		return nil, err
	}
	return result.Mail, nil
}
