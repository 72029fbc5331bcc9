package request

import "net/http"

// ClientWriter wraps a http.ResponseWriter and records the status code written
// to it, so that middleware can report on the response after the handler has
// run.
type ClientWriter struct {
	http.ResponseWriter

	// statusCode is the status code written to the response. Zero until the
	// header has been written.
	statusCode int
}

// NewClientWriter creates a new ClientWriter wrapping w.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
	}
}

// WriteHeader records the status code and writes the header.
func (c *ClientWriter) WriteHeader(statusCode int) {
	c.statusCode = statusCode
	c.ResponseWriter.WriteHeader(statusCode)
}

// Write writes the body, defaulting the status code to 200 if the header has
// not been written yet. This matches the behaviour of the wrapped writer.
func (c *ClientWriter) Write(b []byte) (int, error) {
	if c.statusCode == 0 {
		c.statusCode = http.StatusOK
	}
	return c.ResponseWriter.Write(b)
}

// StatusCode returns the status code written to the response.
func (c *ClientWriter) StatusCode() int {
	if c.statusCode == 0 {
		return http.StatusOK
	}
	return c.statusCode
}
