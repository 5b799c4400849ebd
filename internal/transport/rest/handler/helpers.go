package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"voicedeck/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseDateRange reads the optional from/to query params. Both must be
// present to form a range; values are RFC3339 or plain ISO dates.
func parseDateRange(r *http.Request) (*model.DateRange, error) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, errBadRange
	}

	start, err := parseTimestamp(from)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp(to)
	if err != nil {
		return nil, err
	}
	return &model.DateRange{Start: start, End: end}, nil
}

var errBadRange = &rangeError{"from and to must be provided together"}

type rangeError struct{ msg string }

func (e *rangeError) Error() string { return e.msg }

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
