package services

import "fmt"

// AppError is the error currency between the service layer and the
// handlers: the service decides the HTTP code and the client-facing
// message, handlers only translate it onto the wire. Data carries an
// optional extra payload, used for responses that need more than a
// message (the quota detail on a rejected upload). Err holds the
// underlying cause for logs and errors.Is, never for the client.
type AppError struct {
	HTTPCode int
	Message  string
	Data     interface{}
	Err      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newAppError(httpCode int, message string, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Err: err}
}

func newAppErrorWithData(httpCode int, message string, data interface{}, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Data: data, Err: err}
}
