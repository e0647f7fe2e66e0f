package adapthttp

import (
	"errors"
	"net/http"

	"hydrosync/internal/app"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=4"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req credentialsRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("username must be at least 3 and password at least 4 characters"))
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	// The inactivity watcher starts only once the session has a goal.
	if user.DailyGoalMl > 0 {
		s.reminders.StartFor(user.ID)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"goalMl":   user.DailyGoalMl,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie("session"); err == nil {
		if uid, err := s.parseToken(cookie.Value); err == nil {
			s.reminders.StopFor(uid)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type goalRequest struct {
	GoalMl int `json:"goalMl" validate:"omitempty,gt=0"`
	Age    int `json:"age" validate:"omitempty,gte=5,lte=120"`
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req goalRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("goalMl must be positive, age within 5..120"))
		return
	}

	goal := req.GoalMl
	if goal == 0 {
		if req.Age == 0 {
			writeError(w, http.StatusBadRequest, errors.New("either goalMl or age is required"))
			return
		}
		goal = app.GoalForAge(req.Age)
	}

	uid := userID(r)
	if err := s.accounts.SetGoal(r.Context(), uid, goal); err != nil {
		writeDomainError(w, err)
		return
	}
	s.reminders.StartFor(uid)
	writeJSON(w, http.StatusOK, map[string]any{"goalMl": goal})
}
