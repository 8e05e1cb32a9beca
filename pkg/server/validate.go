package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
)

var (
	// ErrUnsupportedMedia rejects uploads whose filename is not *.pdf.
	ErrUnsupportedMedia = errors.New("only PDF files are supported")
	// ErrPayloadTooLarge rejects uploads over the configured size cap.
	ErrPayloadTooLarge = errors.New("PDF exceeds size limit")
	// ErrBadRequest covers malformed requests (missing file or question).
	ErrBadRequest = errors.New("bad request")
	// ErrModelCall wraps failures from the model collaborator.
	ErrModelCall = errors.New("model call failed")
)

// readUpload parses the multipart "file" field and validates the upload:
// extension first, then size. A mismatched content-type header is logged,
// not rejected, since some browsers omit it.
func (s *Server) readUpload(r *http.Request) ([]byte, error) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: file field is required", ErrBadRequest)
	}
	defer f.Close()

	if hdr.Filename == "" || !strings.HasSuffix(strings.ToLower(hdr.Filename), ".pdf") {
		return nil, ErrUnsupportedMedia
	}
	if ct := strings.ToLower(hdr.Header.Get("Content-Type")); ct != "" && !strings.Contains(ct, "pdf") {
		log.Printf("non-PDF content-type %q on upload %q", ct, hdr.Filename)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable upload", ErrBadRequest)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w of %d MB", ErrPayloadTooLarge, s.maxUploadBytes>>20)
	}
	return data, nil
}

// clientID keys the rate limiter by remote host. Requests without a usable
// address all pool into the "?" bucket.
func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "?"
	}
	return host
}
