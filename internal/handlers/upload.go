package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/welcomedesk/visitors/internal/uploads"
)

// multipart framing allowance on top of the file limit
const multipartSlack = 64 << 10

// logoType sniffs the content and accepts raster images only. SVG can carry
// script, so it is refused along with everything that is not image/*.
func logoType(f io.ReadSeeker) (*mimetype.MIME, bool) {
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, false
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, false
	}
	if !strings.HasPrefix(mt.String(), "image/") || mt.Is("image/svg+xml") || mt.Extension() == "" {
		return nil, false
	}
	return mt, true
}

// POST /api/upload-logo (multipart, field "logo")
func UploadLogo(store *uploads.Store, maxBytes int64, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxBytes+multipartSlack {
			writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartSlack)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, hdr, err := r.FormFile("logo")
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()

		if hdr.Size > maxBytes {
			writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		// The declared part type and file name are client claims; only the
		// sniffed bytes decide what gets stored and under which extension.
		mt, ok := logoType(file)
		if !ok {
			log.Info("rejected logo upload",
				zap.String("declared", hdr.Header.Get("Content-Type")), zap.String("filename", hdr.Filename))
			writeMessage(w, http.StatusBadRequest, "Only image files are allowed")
			return
		}

		name, err := store.SaveLogo(file, mt.Extension())
		if err != nil {
			writeError(w, log, err)
			return
		}
		log.Info("logo uploaded", zap.String("file", name), zap.String("type", mt.String()), zap.Int64("bytes", hdr.Size))
		writeJSON(w, http.StatusOK, map[string]string{"logoUrl": uploads.URL(name)})
	}
}

// GET /uploads/{filename}
func ServeUpload(store *uploads.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := store.Path(chi.URLParam(r, "filename"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeFile(w, r, p)
	}
}
