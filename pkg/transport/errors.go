package transport

import "fmt"

// Error carries the HTTP status and a human-readable message for a failed
// request. Well-known statuses are remapped to fixed messages; anything else
// keeps whatever the server said.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// statusMessages are the fixed messages substituted for well-known statuses.
var statusMessages = map[int]string{
	401: "Authentication required. Please sign in again.",
	403: "You do not have permission to perform this action.",
	404: "The requested resource was not found.",
	500: "An unexpected server error occurred. Please try again later.",
}
