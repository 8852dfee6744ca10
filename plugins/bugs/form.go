package bugs

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/spf13/cast"
)

// EncodeForm encodes fields as a multipart/form-data body.
// Every key becomes exactly one field; values are rendered as text. Fields are
// written in key order so equal inputs produce equal bodies (up to the boundary).
// The returned headers declare the boundary used in the body and only need to be
// merged into the outgoing request.
func EncodeForm(fields map[string]any) (*bytes.Buffer, http.Header, error) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, key := range keys {
		value, err := cast.ToStringE(fields[key])
		if err != nil {
			return nil, nil, fmt.Errorf("bugs: form field %s: %w", key, err)
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, nil, fmt.Errorf("bugs: write form field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, nil, fmt.Errorf("bugs: close form: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", writer.FormDataContentType())
	return body, headers, nil
}
