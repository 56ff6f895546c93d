package controller

import (
	"io"
	"log"
	"net/http"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/service"
)

// readImageUpload returns the bytes of the multipart "image" field. It reads at most one
// byte past the size limit so the image service can reject oversized files.
func readImageUpload(w http.ResponseWriter, r *http.Request, handler string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageBytes+(1<<20))
	if err := r.ParseMultipartForm(service.MaxImageBytes); err != nil {
		log.Printf("❌ %s: Failed to parse multipart form: %v", handler, err)
		response.Error(w, http.StatusRequestEntityTooLarge, response.CodeImageTooLarge, "image exceeds maximum size")
		return nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Printf("❌ %s: missing image field: %v", handler, err)
		response.Error(w, http.StatusBadRequest, response.CodeInvalidRequestBody, "multipart field \"image\" is required")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageBytes+1))
	if err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidRequestBody, "failed to read image")
		return nil, false
	}
	log.Printf("📸 %s: received %s (%d bytes)", handler, header.Filename, len(data))
	return data, true
}
