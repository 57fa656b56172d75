package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// writeDBError translates a persistence error into the API's error
// contract: 404 for missing rows, 409 for unique violations (naming
// the offending constraint), 400 for foreign-key violations and any
// other database error, 500 for anything unrecognized. The 500 detail
// is logged server-side only.
func writeDBError(w http.ResponseWriter, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
	case strings.Contains(msg, "duplicate key"):
		http.Error(w, "duplicate value: "+constraintName(msg), http.StatusConflict)
	case strings.Contains(msg, "violates foreign key constraint"):
		http.Error(w, "related record does not exist: "+constraintName(msg), http.StatusBadRequest)
	case strings.Contains(msg, "SQLSTATE"):
		http.Error(w, msg, http.StatusBadRequest)
	default:
		log.Printf("unexpected error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// constraintName pulls the quoted constraint/index name out of a
// postgres error message, e.g.
//
//	duplicate key value violates unique constraint "idx_users_email"
func constraintName(msg string) string {
	start := strings.Index(msg, `"`)
	if start == -1 {
		return "unknown constraint"
	}
	rest := msg[start+1:]
	end := strings.Index(rest, `"`)
	if end == -1 {
		return "unknown constraint"
	}
	return rest[:end]
}
