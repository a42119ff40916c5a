package rest

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
)

func multipartPhoto(t *testing.T, filename, contentType string, size int) (*bytes.Buffer, string) {
	return multipartPhotoWithFields(t, filename, contentType, size, nil)
}

func multipartPhotoWithFields(t *testing.T, filename, contentType string, size int, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		w.WriteField(name, value)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photoFile"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	part.Write(bytes.Repeat([]byte{0xAB}, size))
	w.Close()

	return &buf, w.FormDataContentType()
}

func TestUploadPhotoNoFile(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("caption", "no file here")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-photo", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadPhotoTooLarge(t *testing.T) {
	// Limit is 1 MB; the handler must reject before touching storage,
	// which is nil here and would panic if called.
	_, handler := newTestAPI(t, nil)

	body, contentType := multipartPhoto(t, "ride.jpg", "image/jpeg", int(1.5*float64(megabyte)))
	req := httptest.NewRequest(http.MethodPost, "/upload-photo", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if msg := resp["message"].(string); !strings.Contains(msg, "size limit") {
		t.Errorf("message = %q, want size-limit cause", msg)
	}
}

func TestUploadPhotoUnsupportedType(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	body, contentType := multipartPhoto(t, "ride.gif", "image/gif", 128)
	req := httptest.NewRequest(http.MethodPost, "/upload-photo", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if msg := resp["message"].(string); !strings.Contains(msg, "unsupported file type") {
		t.Errorf("message = %q, want unsupported-type cause", msg)
	}
}

func TestUploadPhotoManualLocationRejected(t *testing.T) {
	// Invalid hand-placed coordinates must be rejected before the
	// storage call; storage is nil here and would panic if reached.
	testCases := []struct {
		name    string
		fields  map[string]string
		wantMsg string
	}{
		{"latitude out of range", map[string]string{"latitude": "95.0", "longitude": "33.36"}, "out of range"},
		{"longitude out of range", map[string]string{"latitude": "35.17", "longitude": "-181.0"}, "out of range"},
		{"not numbers", map[string]string{"latitude": "north", "longitude": "33.36"}, "must be numbers"},
		{"half a pair", map[string]string{"latitude": "35.17"}, "together"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, handler := newTestAPI(t, nil)

			body, contentType := multipartPhotoWithFields(t, "ride.jpg", "image/jpeg", 128, tc.fields)
			req := httptest.NewRequest(http.MethodPost, "/upload-photo", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decodeResponse(t, rec)
			if msg := resp["message"].(string); !strings.Contains(msg, tc.wantMsg) {
				t.Errorf("message = %q, want it to mention %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestDeletePhotoMissingID(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/delete-photo", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeletePhotoInvalidID(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/delete-photo?photoId=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSaveCaptionInvalidID(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/save-caption",
		strings.NewReader(`{"id":"not-a-uuid","caption":"sunset over the bay"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadGpxWrongExtension(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("gpxFile", "track.txt")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	part.Write([]byte("not a gpx"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-gpx", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadGpxUnparsableFile(t *testing.T) {
	// Bad XML must be rejected before the storage call; storage is nil
	// here and would panic if reached.
	_, handler := newTestAPI(t, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("gpxFile", "track.gpx")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	part.Write([]byte("<gpx><unclosed"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-gpx", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
