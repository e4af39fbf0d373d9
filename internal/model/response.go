package model

// Envelope is the response shape every endpoint returns.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ErrorCode ErrorKind `json:"errorCode,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// PageCount returns the 1-based page for skip/take and the total number of pages.
func PageCount(total, take, skip int) (current, pages int) {
	if take <= 0 {
		return 1, 0
	}
	current = skip/take + 1
	pages = (total + take - 1) / take
	return current, pages
}
