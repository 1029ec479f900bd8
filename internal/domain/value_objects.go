package domain

import "fmt"

// CPR is a Danish personal identification number, ten digits without separator.
type CPR string

// CVR is a Danish company registration number, eight digits.
type CVR string

func (c CPR) Validate() error {
	if !allDigits(string(c), 10) {
		return &DomainError{
			Code:    ErrCodeInvalidCPR,
			Message: fmt.Sprintf("cpr must be 10 digits, got %q", string(c)),
			Err:     ErrInvalidIdentifier,
		}
	}
	return nil
}

func (c CVR) Validate() error {
	if !allDigits(string(c), 8) {
		return &DomainError{
			Code:    ErrCodeInvalidCVR,
			Message: fmt.Sprintf("cvr must be 8 digits, got %q", string(c)),
			Err:     ErrInvalidIdentifier,
		}
	}
	return nil
}

func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
