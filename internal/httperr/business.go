package httperr

import "errors"

// Kind buckets a business failure into the HTTP taxonomy.
type Kind int

const (
	KindValidation Kind = iota // 400
	KindNotFound               // 404
	KindForbidden              // 403
	KindConflict               // 400, distinct retryable code
)

// BusinessError is a domain-level failure carried up to the HTTP edge,
// where Kind picks the status and Code/Message the payload.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrForbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}
