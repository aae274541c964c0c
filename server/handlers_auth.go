package server

import (
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/jrsteele09/go-profile-optimizer/profile"
	"github.com/jrsteele09/go-profile-optimizer/server/authflowrepo"
	"github.com/jrsteele09/go-profile-optimizer/sessions"
	"github.com/rs/zerolog"
)

type loginResponse struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
}

type exchangeRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirectUri,omitempty"`
}

type exchangeResponse struct {
	Success     bool             `json:"success"`
	Profile     *profile.Profile `json:"profile"`
	AccessToken string           `json:"accessToken,omitempty"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
	Warning     string           `json:"warning,omitempty"`
}

type sessionResponse struct {
	Success   bool             `json:"success"`
	Profile   *profile.Profile `json:"profile"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

type profileResponse struct {
	Success bool             `json:"success"`
	Profile *profile.Profile `json:"profile"`
	Warning string           `json:"warning,omitempty"`
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// LinkedInLoginHandler starts the authorization-code flow. It redirects to the consent
// page, or with ?mode=json returns the URL and state for a popup-driven frontend.
func (s *Server) LinkedInLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := generateRandomString(stateBytes)
		if err != nil {
			writeError(w, r, apperrors.Internal(err), http.StatusBadGateway)
			return
		}

		returnURL := r.URL.Query().Get("return_to")
		if returnURL != "" && !s.allowedReturnURL(returnURL) {
			writeError(w, r, apperrors.Validation(apperrors.ErrInvalidRequest, "return_to is not an allowed origin"), http.StatusBadGateway)
			return
		}

		now := time.Now()
		err = s.authState.Upsert(state, &authflowrepo.AuthFlowState{
			RedirectURI: s.config.GetRedirectURI(),
			ReturnURL:   returnURL,
			CreatedAt:   now,
			ExpiresAt:   now.Add(s.config.GetAuthCodeTimeout()),
		})
		if err != nil {
			writeError(w, r, apperrors.Internal(err), http.StatusBadGateway)
			return
		}

		authURL := s.linkedIn.AuthCodeURL(state)
		if r.URL.Query().Get("mode") == "json" {
			writeJSON(w, http.StatusOK, loginResponse{AuthURL: authURL, State: state})
			return
		}
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// LinkedInCallbackHandler completes a flow started by LinkedInLoginHandler: the state
// is consumed, the code exchanged and the profile stored in a new session.
func (s *Server) LinkedInCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if errorParam := query.Get("error"); errorParam != "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "Authorization failed",
				Details: strings.TrimSpace(errorParam + " " + query.Get("error_description")),
			})
			return
		}

		code, state := query.Get("code"), query.Get("state")
		if code == "" || state == "" {
			writeError(w, r, apperrors.Validation(apperrors.ErrInvalidRequest, "missing code or state parameter"), http.StatusBadRequest)
			return
		}

		authState, err := s.authState.Take(state)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Rejected callback state")
			writeError(w, r, apperrors.Validation(apperrors.ErrInvalidState, "invalid or expired state parameter"), http.StatusBadRequest)
			return
		}

		result, err := s.exchanger.ExchangeAndFetchProfile(r.Context(), code, authState.RedirectURI)
		if err != nil {
			writeError(w, r, err, http.StatusBadRequest)
			return
		}
		if _, err := s.startSession(r, w, result); err != nil {
			writeError(w, r, err, http.StatusBadRequest)
			return
		}

		if authState.ReturnURL != "" {
			http.Redirect(w, r, authState.ReturnURL, http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, exchangeResponse{
			Success: true,
			Profile: result.Profile,
			Warning: result.Warning(),
		})
	}
}

// ExchangeHandler exchanges a code the frontend received on its own redirect URI.
func (s *Server) ExchangeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exchangeRequest
		if err := decodeJSON(r, w, &req); err != nil {
			writeError(w, r, err, http.StatusBadRequest)
			return
		}

		result, err := s.exchanger.ExchangeAndFetchProfile(r.Context(), req.Code, req.RedirectURI)
		if err != nil {
			writeError(w, r, err, http.StatusBadRequest)
			return
		}
		if _, err := s.startSession(r, w, result); err != nil {
			writeError(w, r, err, http.StatusBadRequest)
			return
		}

		resp := exchangeResponse{
			Success:     true,
			Profile:     result.Profile,
			AccessToken: result.Token.AccessToken,
			Warning:     result.Warning(),
		}
		if !result.Token.Expiry.IsZero() {
			resp.ExpiresAt = &result.Token.Expiry
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(r.Context(), r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "LinkedIn account not connected"})
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Success: true, Profile: sess.Profile, ExpiresAt: sess.ExpiresAt})
	}
}

// ProfileHandler refetches the member profile using the bearer token in the
// Authorization header, or else the session's token. A profile refreshed through the
// session is stored back on it.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, fromHeader := bearerToken(r)
		var sess sessions.Session
		if !fromHeader {
			loaded, err := s.sessions.Load(r.Context(), r)
			if err != nil || loaded.AccessToken == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "LinkedIn account not connected"})
				return
			}
			sess, token = loaded, loaded.AccessToken
		}

		p, err := s.exchanger.FetchProfile(r.Context(), token)
		if err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}

		if !fromHeader {
			sess.Profile = p
			if err := s.sessions.Store().Set(r.Context(), sess); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Failed to store refreshed profile")
			}
		}
		writeJSON(w, http.StatusOK, profileResponse{Success: true, Profile: p, Warning: strings.Join(p.Warnings, "; ")})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func (s *Server) DisconnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessions.End(r.Context(), w, r); err != nil {
			writeError(w, r, apperrors.Internal(err), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func (s *Server) startSession(r *http.Request, w http.ResponseWriter, result *profile.Result) (sessions.Session, error) {
	memberID := ""
	if result.Profile.SourceOf(profile.FieldID) == profile.SourceReal {
		memberID = result.Profile.ID
	}
	sess, err := s.sessions.Start(r.Context(), w, sessions.Session{
		MemberID:    memberID,
		AccessToken: result.Token.AccessToken,
		Scope:       result.Token.Scope,
		TokenExpiry: result.Token.Expiry,
		Profile:     result.Profile,
	})
	if err != nil {
		return sessions.Session{}, apperrors.Internal(err)
	}
	return sess, nil
}
