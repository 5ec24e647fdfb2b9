package handlers

import (
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

// GET /qr.png
// Encodes the public form URL so the welcome desk can print it.
// publicURL may be empty, in which case the request host is used.
func FormQR(publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := publicURL
		if url == "" {
			url = "http://" + r.Host + "/"
		}

		png, err := qrcode.Encode(url, qrcode.Medium, 256)
		if err != nil {
			http.Error(w, "failed to generate qr", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
