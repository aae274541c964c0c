package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-profile-optimizer/content"
	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
)

type generateResponse struct {
	Success bool `json:"success"`
	*content.GeneratedContent
}

type templatesResponse struct {
	Success   bool               `json:"success"`
	Templates []content.Template `json:"templates"`
	Tones     []content.Tone     `json:"tones"`
	Lengths   []content.Length   `json:"lengths"`
}

type shareRequest struct {
	Content     string `json:"content"`
	AccessToken string `json:"accessToken,omitempty"`
}

type shareResponse struct {
	Success bool   `json:"success"`
	PostID  string `json:"postId"`
}

type analyzeRequest struct {
	Content string `json:"content"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	content.PostAnalysis
}

type networkingRequest struct {
	Name     string `json:"name,omitempty"`
	Industry string `json:"industry,omitempty"`
	Context  string `json:"context"`
}

type networkingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type optimizeRequest struct {
	ProfileData *content.ProfileData `json:"profileData"`
}

type optimizeResponse struct {
	Success bool `json:"success"`
	content.ProfileReport
}

// GenerateContentHandler runs the template engine. The simulated latency is bound to
// the request context, so a disconnecting client cancels it.
func (s *Server) GenerateContentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req content.Request
		if err := decodeJSON(r, w, &req); err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}

		generated, err := s.engine.Generate(r.Context(), req)
		if err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, generateResponse{Success: true, GeneratedContent: generated})
	}
}

func (s *Server) TemplatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := s.engine.Catalog()
		templates := catalog.Templates()
		if tone := content.Tone(r.URL.Query().Get("tone")); tone != "" {
			if !tone.Valid() {
				writeError(w, r, apperrors.Validation(apperrors.ErrInvalidRequest, "unknown tone"), http.StatusBadGateway)
				return
			}
			templates = catalog.ByTone(tone)
		}
		writeJSON(w, http.StatusOK, templatesResponse{
			Success:   true,
			Templates: templates,
			Tones:     content.Tones,
			Lengths:   content.Lengths,
		})
	}
}

// ShareHandler publishes a post with the supplied access token, falling back to the
// token held in the caller's session.
func (s *Server) ShareHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req shareRequest
		if err := decodeJSON(r, w, &req); err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, r, apperrors.Validation(apperrors.ErrInvalidRequest, "content is required"), http.StatusBadGateway)
			return
		}

		token := strings.TrimSpace(req.AccessToken)
		if token == "" {
			sess, err := s.sessions.Load(r.Context(), r)
			if err != nil || sess.AccessToken == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "LinkedIn account not connected"})
				return
			}
			token = sess.AccessToken
		}

		postID, err := s.linkedIn.Share(r.Context(), token, req.Content)
		if err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, shareResponse{Success: true, PostID: postID})
	}
}

func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := decodeJSON(r, w, &req); err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}
		analysis, err := content.AnalyzePost(req.Content)
		if err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, analyzeResponse{Success: true, PostAnalysis: analysis})
	}
}

func (s *Server) NetworkingMessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req networkingRequest
		if err := decodeJSON(r, w, &req); err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}
		msg, err := s.engine.NetworkingMessage(content.Target{Name: req.Name, Industry: req.Industry}, req.Context)
		if err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, networkingResponse{Success: true, Message: msg})
	}
}

func (s *Server) OptimizeProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req optimizeRequest
		if err := decodeJSON(r, w, &req); err != nil {
			writeError(w, r, err, http.StatusBadGateway)
			return
		}
		if req.ProfileData == nil {
			writeError(w, r, apperrors.Validation(apperrors.ErrInvalidRequest, "profileData is required"), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, optimizeResponse{Success: true, ProfileReport: s.engine.OptimizeProfile(*req.ProfileData)})
	}
}
