package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog-service/responses"
	"blog-service/services"
)

const requestTimeout = 10 * time.Second

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func successResponse(rw http.ResponseWriter, message string, data interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(rw).Encode(responses.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func errorResponse(rw http.ResponseWriter, err error, code int) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	_ = json.NewEncoder(rw).Encode(responses.APIResponse{
		Success: false,
		Message: err.Error(),
	})
}

// serviceErrorResponse maps the service error taxonomy onto status codes.
// Anything outside the taxonomy collapses to a generic 500 so internals
// never leak to clients.
func serviceErrorResponse(rw http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrMissingBlogID),
		errors.Is(err, services.ErrMissingTitle),
		errors.Is(err, services.ErrInvalidDes),
		errors.Is(err, services.ErrMissingBanner),
		errors.Is(err, services.ErrInvalidTags),
		errors.Is(err, services.ErrMissingContent):
		errorResponse(rw, err, http.StatusBadRequest)
	case errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrBlogNotFound),
		errors.Is(err, services.ErrUserNotFound):
		errorResponse(rw, err, http.StatusNotFound)
	case errors.Is(err, services.ErrNotCommentAuthor),
		errors.Is(err, services.ErrNotBlogAuthor),
		errors.Is(err, services.ErrDraftBlog):
		errorResponse(rw, err, http.StatusForbidden)
	default:
		errorResponse(rw, fmt.Errorf("internal server error"), http.StatusInternalServerError)
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}
