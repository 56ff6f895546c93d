package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/session"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// decodeBody reads, logs and decodes a JSON body into dst, then runs its validate tags.
// It writes the error response itself and returns false when the request must stop.
func decodeBody(w http.ResponseWriter, r *http.Request, handler string, dst any) bool {
	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Printf("❌ %s: Failed to read request body: %v", handler, err)
		response.Error(w, http.StatusBadRequest, response.CodeInvalidRequestBody, "failed to read request body")
		return false
	}
	defer r.Body.Close()

	log.Printf("📋 %s: Request body: %s", handler, string(bodyBytes))

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(dst); err != nil {
		log.Printf("❌ %s: Failed to decode request body: %v", handler, err)
		response.Error(w, http.StatusBadRequest, response.CodeInvalidRequestBody, fmt.Sprintf("invalid request body: %v", err))
		return false
	}

	if err := validate.Struct(dst); err != nil {
		msg := validationMessage(err)
		log.Printf("❌ %s: Validation failed: %s", handler, msg)
		response.Error(w, http.StatusBadRequest, response.CodeValidation, msg)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// currentSession returns the session stored by the session middleware
func currentSession(r *http.Request) *session.Session {
	s, _ := session.FromContext(r.Context())
	return s
}
