package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxJSONBody limits request bodies decoded by [ReadJSON].
const MaxJSONBody = 1 << 20

var (
	ErrBodyTooLarge   = errors.New("request body too large")
	ErrTrailingJSON   = errors.New("unexpected data after JSON value")
	errJSONNotWritten = errors.New("error writing data to JSON")
)

// WriteJSON serializes data to JSON and writes it with statusCode and the
// "application/json" content type. If marshaling fails it responds with 500
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.FunctionResponse{OK: true}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, errJSONNotWritten.Error(), http.StatusInternalServerError)
		return 0, fmt.Errorf("%w: %w", errJSONNotWritten, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ReadJSON decodes the request body into v. An empty body leaves v untouched
// and is not an error, so endpoints with all-optional fields accept it.
// Bodies over [MaxJSONBody] and bodies holding more than one JSON value are
// rejected.
func ReadJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}

	limited := &io.LimitedReader{R: r.Body, N: MaxJSONBody + 1}
	dec := json.NewDecoder(limited)
	err := dec.Decode(v)
	switch {
	case limited.N <= 0:
		return ErrBodyTooLarge
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return fmt.Errorf("error decoding JSON body: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingJSON
	}
	return nil
}
