package core

import (
	"errors"
	"fmt"
	"io"
)

// General error codes
const (
	NOERROR   int = 0
	EMISSING  int = 122 // required node or resource does not exist
	EINVALID  int = 123 // validation of configuration or input failed
	EDETACHED int = 124 // node is no longer connected to its document
	EINTERNAL int = 125 // internal error, engine invariant violated
)

var errorTexts = map[int]string{
	NOERROR:   "OK",
	EMISSING:  "not found",
	EINVALID:  "invalid",
	EDETACHED: "detached",
	EINTERNAL: "internal error",
}

func errorText(ecode int) string {
	if txt, ok := errorTexts[ecode]; ok {
		return txt
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type codedError struct {
	cause error
	code  int
	msg   string
}

func (e codedError) Unwrap() error {
	return e.cause
}

func (e codedError) Error() string {
	if e.msg == "" || e.msg == e.cause.Error() {
		return fmt.Sprintf("[%d] %v", e.code, e.cause)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

func (e codedError) ErrorCode() int {
	return e.code
}

func (e codedError) UserMessage() string {
	return e.msg
}

var _ AppError = codedError{}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return codedError{
		cause: errors.New(errorText(code)),
		code:  code,
		msg:   fmt.Sprintf(format, v...),
	}
}

// WrapError wraps err, adding an error code and a user message.
// If err is nil, an error denoting the code's default text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return codedError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Code returns the error code associated with an error.
// If no code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	var e AppError
	if errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If err carries no message, the text for its code is returned.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) && e.UserMessage() != "" {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// UserError prints an error to w in a form suitable for end users.
func UserError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var e AppError
	if errors.As(err, &e) {
		fmt.Fprintf(w, "[%d] %s\n", e.ErrorCode(), UserMessage(err))
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err.Error())
}
