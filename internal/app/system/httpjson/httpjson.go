// internal/app/system/httpjson/httpjson.go
//
// Package httpjson holds the small JSON request/response helpers shared by
// the API handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Write serializes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes the common {"message": "..."} body used for errors and
// simple acknowledgements.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Decode reads the request body as JSON into dst. A missing or empty body
// is an error; handlers treat it the same as a malformed one.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}
