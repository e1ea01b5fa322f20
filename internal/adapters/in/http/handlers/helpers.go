// backend/internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"verseone/internal/adapters/in/http/middleware"
	usecase "verseone/internal/application/usecase"
	cartdom "verseone/internal/domain/cart"
	orderdom "verseone/internal/domain/order"
	productdom "verseone/internal/domain/product"
)

// maxJSONBody bounds request bodies of the JSON endpoints.
const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// adminActor names the admin verified by AdminAuth ("-" when absent).
func adminActor(r *http.Request) string {
	uid, email, ok := middleware.CurrentUIDAndEmail(r)
	if !ok {
		return "-"
	}
	if email != "" {
		return uid + " <" + email + ">"
	}
	return uid
}

// auditAdmin logs a successful admin write together with who made it.
func auditAdmin(r *http.Request, tag, format string, args ...any) {
	log.Printf("[%s] admin=%s rid=%s %s",
		tag, adminActor(r), middleware.RequestID(r.Context()), fmt.Sprintf(format, args...))
}

// decodeJSON reads one JSON object into dst. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// statusFor maps usecase / domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// 400
	case errors.Is(err, productdom.ErrValidation),
		errors.Is(err, cartdom.ErrInvalidCart),
		errors.Is(err, cartdom.ErrInvalidQuantity),
		errors.Is(err, orderdom.ErrInvalidOrder),
		errors.Is(err, orderdom.ErrInvalidCustomer),
		errors.Is(err, orderdom.ErrInvalidItems),
		errors.Is(err, orderdom.ErrInvalidItem),
		errors.Is(err, orderdom.ErrInvalidStatus),
		errors.Is(err, usecase.ErrImageInvalid),
		errors.Is(err, usecase.ErrEmptyCart):
		return http.StatusBadRequest

	// 404
	case errors.Is(err, productdom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, productdom.ErrConflict):
		return http.StatusConflict

	case errors.Is(err, usecase.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge

	// 503
	case errors.Is(err, usecase.ErrImageStoreUnavailable),
		errors.Is(err, usecase.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeUsecaseErr logs 5xx and replies with the mapped status.
// Internal error text is not echoed to the client.
func writeUsecaseErr(w http.ResponseWriter, r *http.Request, tag string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] ERROR rid=%s path=%s: %v", tag, middleware.RequestID(r.Context()), r.URL.Path, err)
		if status == http.StatusInternalServerError {
			writeErr(w, status, "internal error")
			return
		}
	}
	writeErr(w, status, err.Error())
}

// cartIDFrom returns the storefront session's cart id (X-Cart-Id header).
// Missing header means the default session.
func cartIDFrom(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(middleware.HeaderCartID))
	if id == "" {
		return cartdom.DefaultID
	}
	return id
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
