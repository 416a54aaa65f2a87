// Package weberr decorates errors with the HTTP response to write
// for them and with structured fields for the error log.
package weberr

// Opt decorates an error with additional behavior.
type Opt func(error) error

// Wrap applies the given decorations to err.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse sets the body and status to answer the request with.
func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// WithFields attaches structured fields to be logged with the error.
func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}
