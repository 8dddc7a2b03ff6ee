// Package apperr is the error taxonomy shared by every handler. Each Kind maps
// to one HTTP status; Respond writes the uniform {"error": msg} body.
package apperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Unauthenticated
	Forbidden
	NotFound
	Conflict
	InsufficientStock
	SelfDelete
	HasOrders
)

func (k Kind) Status() int {
	switch k {
	case Validation, InsufficientStock, SelfDelete, HasOrders:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a client-facing message and, for Internal errors, the
// underlying cause which is only ever logged.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap marks err as Internal. msg is what gets logged next to it.
func Wrap(err error, msg string) *Error {
	return &Error{Kind: Internal, Msg: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message is the client-facing text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Msg
	}
	return internalMessage
}

const internalMessage = "Internal server error"

// Respond writes err as JSON. Internal causes are logged and replaced by a
// generic message.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Wrap(err, "unexpected error")
	}
	if e.Kind == Internal {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), e)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalMessage})
		return
	}
	c.AbortWithStatusJSON(e.Kind.Status(), gin.H{"error": e.Msg})
}
