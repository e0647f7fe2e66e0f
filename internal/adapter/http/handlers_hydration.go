package adapthttp

import (
	"errors"
	"net/http"
	"strconv"
)

func (s *Server) handleDrink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		AmountMl int `json:"amountMl"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.hydration.RecordDrink(r.Context(), userID(r), req.AmountMl)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleScan is the deep-link / tag-scan trigger: "an amount of liquid was
// consumed by user U now", nothing more.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	uid := r.URL.Query().Get("user")
	amount, err := strconv.Atoi(r.URL.Query().Get("amount"))
	if uid == "" || err != nil {
		writeError(w, http.StatusBadRequest, errors.New("user and numeric amount are required"))
		return
	}

	res, derr := s.hydration.RecordDrink(r.Context(), uid, amount)
	if derr != nil {
		writeDomainError(w, derr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRefill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tumbler, err := s.hydration.Refill(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tumbler)
}

func (s *Server) handleTumbler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tumbler, err := s.hydration.Tumbler(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tumbler)
}

func (s *Server) handleProgressToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	progress, err := s.hydration.TodayProgress(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleProgressWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	series, err := s.hydration.WeeklySeries(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": series})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries, err := s.hydration.History(r.Context(), userID(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	case http.MethodDelete:
		if err := s.hydration.ClearHistory(r.Context(), userID(r)); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
