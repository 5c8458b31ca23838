package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-hospital-scheduling/pkg/apperror"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

// writeError maps an error kind to its status code. Persistence failures are
// reported without their cause.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var appErr *apperror.Error
	message := err.Error()
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		response.BadRequest(w, message)
	case apperror.KindReference:
		response.UnprocessableEntity(w, message)
	case apperror.KindNotFound:
		response.NotFound(w, message)
	case apperror.KindConflict:
		response.Conflict(w, message)
	default:
		response.InternalServerError(w, fallback)
	}
}

// decodeAndValidate reads a JSON body into req and runs its validate tags.
// It writes the 400 itself and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}
	if v == nil {
		return true
	}
	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathInt(w http.ResponseWriter, r *http.Request, name, label string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid "+label)
		return 0, false
	}
	return id, true
}

func query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(query(r, name))
	return b
}
