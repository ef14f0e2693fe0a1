// Package responsewriter wraps http.ResponseWriter so the logging middleware
// can read back the status code and body size after a handler has run.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records the status code and the number of body bytes the
// wrapped handler produced. Before any write the status reads as 200,
// matching what net/http sends for a handler that never calls WriteHeader.
type ResponseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

// Wrap returns a recording wrapper around w.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// WriteHeader forwards and records the first status code. Later calls are
// ignored, the same way net/http treats duplicate WriteHeader calls.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

// Write forwards the body bytes and adds them to the recorded size,
// implying a 200 when no status has been sent yet.
func (w *ResponseWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// StatusCode returns the status code sent to the client.
func (w *ResponseWriter) StatusCode() int {
	return w.status
}

// BytesWritten returns the number of body bytes sent to the client.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytes
}
