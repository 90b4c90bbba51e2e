package player

import "fmt"

// InvalidParametersMessage is the only detail a caller sees for a bad play request.
const InvalidParametersMessage = "Invalid parameters"

// ValidationError means the request lacks the fields its type requires or
// carries a malformed one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid play parameters: %s %s", e.Field, e.Reason)
}

// UnsafeEmbedError means a URL points at a host outside the embed allow-list.
type UnsafeEmbedError struct {
	URL  string
	Host string
}

func (e *UnsafeEmbedError) Error() string {
	return fmt.Sprintf("refusing to embed %q: host %q is not allowed", e.URL, e.Host)
}
