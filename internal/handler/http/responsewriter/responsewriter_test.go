package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	if w.StatusCode() != http.StatusOK {
		t.Errorf("expected default status 200, got %d", w.StatusCode())
	}
	if w.BytesWritten() != 0 {
		t.Errorf("expected 0 bytes written, got %d", w.BytesWritten())
	}
}

func TestWriteHeader_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)

	if w.StatusCode() != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.StatusCode())
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected underlying status 404, got %d", rec.Code)
	}
}

func TestWriteHeader_OnlyFirstCallCounts(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusInternalServerError)

	if w.StatusCode() != http.StatusNotFound {
		t.Errorf("expected first status 404 to stick, got %d", w.StatusCode())
	}
}

func TestWrite_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	payload := []byte(`{"results":[]}`)
	n, err := w.Write(payload)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if n != len(payload) {
		t.Errorf("expected %d bytes, got %d", len(payload), n)
	}
	if w.BytesWritten() != len(payload) {
		t.Errorf("expected BytesWritten %d, got %d", len(payload), w.BytesWritten())
	}
	if w.StatusCode() != http.StatusOK {
		t.Errorf("expected implicit 200, got %d", w.StatusCode())
	}
}
