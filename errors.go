package gelbooru

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotFound is returned by single item lookups when the provider answered
	// successfully but with no matching record.
	ErrNotFound = errors.New("gelbooru: not found")

	// ErrMalformedResponse is returned when a successful response body cannot be
	// decoded.
	ErrMalformedResponse = errors.New("gelbooru: malformed response")
)

// ResponseError is returned when the provider answers with a status code other
// than 200 or 201.
type ResponseError struct {
	StatusCode int
	Status     string

	// Message is the reason reported by the provider, if the body carried one.
	Message string

	// Body is the raw response body.
	Body string
}

func (e *ResponseError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("gelbooru: status code is %d", e.StatusCode))
	if e.Message != "" {
		b.WriteString(" (")
		b.WriteString(e.Message)
		b.WriteString(")")
	}
	return b.String()
}

func isSuccessStatus(code int) bool {
	return code == http.StatusOK || code == http.StatusCreated
}

// parseErrorResponse pulls the provider's reason out of an error body. The JSON
// API reports it as "message", the XML API as a reason attribute on <response>.
func parseErrorResponse(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		for _, key := range []string{"message", "reason", "error"} {
			if v := res.Get(key); v.Exists() && v.Type == gjson.String {
				return v.String()
			}
		}
		return ""
	}
	doc, err := decodeXML(body)
	if err != nil {
		return ""
	}
	recs, err := records(doc, "response")
	if err != nil || len(recs) == 0 {
		return ""
	}
	return fieldsOf(recs[0]).str("reason")
}
