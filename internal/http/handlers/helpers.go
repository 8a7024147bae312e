package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/logx"
	"courier-payouts/internal/service/ledger"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil && logger != nil {
		logger.Error("json encode error",
			logx.String("request_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

type errResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	PayoutID string `json:"payout_id,omitempty"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeErrorBody(logger, w, r, status, errResponse{Error: msg})
}

func writeErrorBody(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, body errResponse) {
	if logger != nil {
		logger.Warn("http error",
			logx.String("request_id", reqID(r.Context())),
			logx.Int("status", status),
			logx.String("msg", body.Error),
		)
	}
	writeJSON(logger, w, r, status, body)
}

// statusClientClosedRequest is the nginx convention for a request the client abandoned.
const statusClientClosedRequest = 499

// writeServiceError maps service errors onto HTTP statuses. Internals never leak into the body.
func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		we *ledger.WriteError
		fe *apperr.FieldError
	)
	switch {
	case errors.As(err, &we):
		status := http.StatusInternalServerError
		if isUnavailable(we.Err) {
			status = http.StatusServiceUnavailable
			w.Header().Set("Retry-After", "1")
		}
		writeErrorBody(logger, w, r, status, errResponse{
			Error:    "payout outcome unknown, verify before retrying",
			PayoutID: we.PayoutID.String(),
		})
	case errors.Is(err, apperr.InvalidAmount), errors.Is(err, apperr.InvalidMethod), errors.Is(err, apperr.Invalid):
		body := errResponse{Error: validationMessage(err)}
		if errors.As(err, &fe) {
			body.Field = fe.Field
		}
		writeErrorBody(logger, w, r, http.StatusBadRequest, body)
	case errors.Is(err, apperr.NotFound):
		writeError(logger, w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.Conflict):
		writeError(logger, w, r, http.StatusConflict, "conflict")
	case errors.Is(err, context.Canceled):
		writeError(logger, w, r, statusClientClosedRequest, "request canceled")
	case isUnavailable(err):
		w.Header().Set("Retry-After", "1")
		writeError(logger, w, r, http.StatusServiceUnavailable, "data unavailable")
	default:
		if logger != nil {
			logger.Error("unexpected service error",
				logx.String("request_id", reqID(r.Context())),
				logx.Err(err),
			)
		}
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

func isUnavailable(err error) bool {
	return errors.Is(err, apperr.DataUnavailable) || errors.Is(err, context.DeadlineExceeded)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, apperr.InvalidAmount):
		return apperr.InvalidAmount.Error()
	case errors.Is(err, apperr.InvalidMethod):
		return apperr.InvalidMethod.Error()
	default:
		return apperr.Invalid.Error()
	}
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate decodes the body and runs struct tag validation; failures answer 400 with the field name.
func decodeAndValidate[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	if !decodeJSON(logger, w, r, dst) {
		return false
	}
	if err := validate.Struct(dst); err != nil {
		body := errResponse{Error: apperr.Invalid.Error()}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			body.Field = verrs[0].Field()
			body.Error = body.Field + " failed on " + verrs[0].Tag()
		}
		writeErrorBody(logger, w, r, http.StatusBadRequest, body)
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func intQuery(r *http.Request, name string) (*int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, errors.New("invalid " + name)
	}
	return &v, nil
}
