// Package web holds the small handler framework the API is built on:
// handlers return errors instead of writing failure responses, and
// middleware composes around them.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler is an HTTP handler that reports failures to the middleware
// chain instead of writing them itself.
type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

type Middleware func(Handler) Handler

// WrapMiddleware wraps the handler so that the first middleware in
// the slice is the outermost one at execution time.
func WrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if m := mw[i]; m != nil {
			handler = m(handler)
		}
	}

	return handler
}

// Respond marshals data as the JSON response body. A no-content
// status writes the header only.
func Respond(ctx context.Context, w http.ResponseWriter, data interface{}, statusCode int) error {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling response body: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing response body: %w", err)
	}

	return nil
}

// maxBodyBytes caps request bodies at 1MB.
const maxBodyBytes = 1 << 20

// Decode reads the request body as JSON into val, rejecting unknown
// fields and oversized bodies.
func Decode(w http.ResponseWriter, r *http.Request, val interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	return dec.Decode(val)
}

// Param returns the named path parameter of the matched route.
func Param(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}
