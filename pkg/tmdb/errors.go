package tmdb

import "fmt"

// UpstreamError is returned for any TMDB call that did not produce a 2xx
// response. Status is 0 when the request never got a response.
type UpstreamError struct {
	Status  int
	Message string
	Path    string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("tmdb %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("tmdb %s: status %d: %s", e.Path, e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
