package writer

import (
	"github.com/sant0-9/quill/internal/llm"
)

// DefaultErrorPrefix is used when a Reply carries no catalogue prefix
const DefaultErrorPrefix = "An error occurred"

// Reply is either a successful reply text or an error, never both
type Reply struct {
	Text  string
	Usage llm.Usage
	Err   error

	prefix string
}

// OK reports whether the request succeeded
func (r Reply) OK() bool {
	return r.Err == nil
}

// String returns the reply text, or "<prefix>: <details>" for a failure
func (r Reply) String() string {
	if r.Err == nil {
		return r.Text
	}
	prefix := r.prefix
	if prefix == "" {
		prefix = DefaultErrorPrefix
	}
	return prefix + ": " + r.Err.Error()
}
