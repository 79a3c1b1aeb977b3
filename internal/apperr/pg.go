package apperr

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Map well-known constraint names to client messages (extend as you add constraints)
var constraintMessage = map[string]string{
	"authors_email_key":     "email already registered",
	"books_isbn_key":        "isbn already exists",
	"books_author_id_fkey":  "author not found",
	"books_pages_check":     "pages must be greater than 0",
	"books_published_check": "publishedYear must be greater than 0",
	"authors_birth_check":   "birthYear must be greater than 0",
}

// Guess a message from a column name present in PG error detail
func messageFromDetail(detail string) string {
	switch {
	case strings.Contains(detail, "email"):
		return constraintMessage["authors_email_key"]
	case strings.Contains(detail, "isbn"):
		return constraintMessage["books_isbn_key"]
	case strings.Contains(detail, "author_id"):
		return constraintMessage["books_author_id_fkey"]
	}
	return ""
}

// FromDB normalizes a store error into the taxonomy right after the call.
// entity names the resource for not-found messages ("author", "book").
func FromDB(err error, entity string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NotFound(entity + " not found")
	}

	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Internal(entity+" store failure", err)
	}

	msg := constraintMessage[pg.ConstraintName]
	if msg == "" && pg.Detail != "" {
		msg = messageFromDetail(pg.Detail)
	}

	// SQLSTATE switch
	switch pg.Code {
	case "23505": // unique_violation
		if msg == "" {
			msg = entity + " already exists"
		}
		return &Error{Code: CodeConflict, Message: msg, Cause: err}
	case "23503": // foreign_key_violation
		if msg == "" {
			msg = "referenced record not found"
		}
		return &Error{Code: CodeNotFound, Message: msg, Cause: err}
	case "23502": // not_null_violation
		field := pg.ColumnName
		if field == "" {
			field = "field"
		}
		return &Error{Code: CodeInvalidInput, Message: field + " is required", Cause: err}
	case "23514": // check_violation
		if msg == "" {
			msg = "constraint failed"
		}
		return &Error{Code: CodeInvalidInput, Message: msg, Cause: err}
	case "22P02": // invalid_text_representation
		return &Error{Code: CodeInvalidInput, Message: "invalid format", Cause: err}
	case "22001": // string_data_right_truncation
		return &Error{Code: CodeInvalidInput, Message: "value is too long", Cause: err}
	default:
		return Internal(entity+" store failure", err)
	}
}
