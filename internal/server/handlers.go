package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"trak/internal/api"
	"trak/internal/hierarchy"
)

const (
	defaultJSONMaxBody = 1 << 20  // 1 MiB
	replaceJSONMaxBody = 16 << 20 // 16 MiB
)

type apiError struct {
	status  int
	code    string
	errCode int
	err     error
}

func (e apiError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return http.StatusText(e.status)
}

func (e apiError) Unwrap() error {
	return e.err
}

func makeAPIError(status int, code string, errCode int, err error) error {
	var existing apiError
	if errors.As(err, &existing) {
		return existing
	}
	return apiError{status: status, code: code, errCode: errCode, err: err}
}

func badRequest(err error) error {
	return makeAPIError(http.StatusBadRequest, "invalid_argument", ErrCodeInvalidArgument, err)
}

func badRequestCode(err error, errCode int) error {
	return makeAPIError(http.StatusBadRequest, "invalid_argument", errCode, err)
}

func notFound(err error) error {
	return makeAPIError(http.StatusNotFound, "not_found", ErrCodeProjectNotFound, err)
}

func conflictCode(err error, errCode int) error {
	return makeAPIError(http.StatusConflict, "conflict", errCode, err)
}

func notImplemented(err error) error {
	return makeAPIError(http.StatusNotImplemented, "not_implemented", ErrCodeNotImplemented, err)
}

func badGateway(err error) error {
	return makeAPIError(http.StatusBadGateway, "upstream", ErrCodeJiraUpstream, err)
}

func storeFailure(err error) error {
	return makeAPIError(http.StatusInternalServerError, "internal", ErrCodeStoreFailure, err)
}

func httpStatusFromError(err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) {
		return apiErr.status
	}
	if hierarchy.IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorCode(status int, err error) string {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.code != "" {
		return apiErr.code
	}
	switch status {
	case http.StatusBadRequest:
		return "invalid_argument"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "resource_exhausted"
	case http.StatusInternalServerError:
		return "internal"
	case http.StatusNotImplemented:
		return "not_implemented"
	case http.StatusBadGateway:
		return "upstream"
	default:
		return ""
	}
}

func errorNumericCode(status int, err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.errCode > 0 {
		return apiErr.errCode
	}
	return defaultErrorCodeByStatus(status)
}

func shouldWarnClientError(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

func isUniqueConstraint(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: projects.id")
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeErrorReq(w, nil, status, err)
}

func (s *Server) writeErrorReq(w http.ResponseWriter, r *http.Request, status int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	code := errorCode(status, err)
	numericCode := errorNumericCode(status, err)
	message := err.Error()

	fields := []any{"status", status, "code", code, "error_code", numericCode, "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	}

	switch {
	case status >= 500 && status != http.StatusNotImplemented && status != http.StatusBadGateway:
		s.log().Error("request error", fields...)
		message = "internal error"
	case status >= 500:
		s.log().Warn("request error", fields...)
	case status >= 400 && shouldWarnClientError(status):
		s.log().Warn("request rejected", fields...)
	case status >= 400:
		s.log().Debug("request rejected", fields...)
	}

	s.writeJSON(w, status, api.ErrorResponse{Error: message, Code: code, ErrorCode: numericCode})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorReq(w, r, httpStatusFromError(err), err)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := defaultJSONMaxBody
	if r.Method == http.MethodPut && r.URL.Path == "/api/projects" {
		maxBytes = replaceJSONMaxBody
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	return json.NewDecoder(r.Body).Decode(dst)
}

func classifyDecodeJSONError(err error) error {
	if err == nil {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return badRequestCode(fmt.Errorf("request body too large"), ErrCodeRequestTooLarge)
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return badRequestCode(fmt.Errorf("invalid JSON payload"), ErrCodeInvalidJSON)
	}

	return badRequestCode(err, ErrCodeInvalidJSON)
}

func (s *Server) decodeJSONReq(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, classifyDecodeJSONError(err))
		return false
	}
	return true
}

func (s *Server) pathIDOrBadRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("invalid project id %q", raw), ErrCodeInvalidID))
		return 0, false
	}
	return id, true
}
