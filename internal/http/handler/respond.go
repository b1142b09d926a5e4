package handler

import (
	"encoding/json"
	"net/http"

	"devhub/internal/validate"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMsg emits the single-error envelope {"msg": ...}.
func writeMsg(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"msg": msg})
}

// writeFieldErrors emits the validation envelope {"errors": [...]}.
func writeFieldErrors(w http.ResponseWriter, code int, errs []validate.FieldError) {
	writeJSON(w, code, map[string]any{"errors": errs})
}

// writeErrorList emits {"errors":[{"msg": ...}]} for non-field failures
// that clients render in the same error list as validation output.
func writeErrorList(w http.ResponseWriter, code int, msgs ...string) {
	list := make([]map[string]string, 0, len(msgs))
	for _, m := range msgs {
		list = append(list, map[string]string{"msg": m})
	}
	writeJSON(w, code, map[string]any{"errors": list})
}
