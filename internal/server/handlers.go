package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/jonathan/career-pathways/internal/courses"
	"github.com/jonathan/career-pathways/internal/recommend"
	"github.com/jonathan/career-pathways/internal/types"
)

// RecommendRequest represents the request body for POST /api/v1/recommendations
type RecommendRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	recommend.Options
}

// TransitionsRequest represents the request body for POST /api/v1/transitions
type TransitionsRequest struct {
	Profile *types.RawProfile `json:"profile" validate:"required"`
	Limit   int               `json:"limit,omitempty" validate:"gte=0,lte=50"`
}

// MatchCoursesResponse represents the response for POST /api/v1/courses/match
type MatchCoursesResponse struct {
	TargetTitle string              `json:"target_title"`
	Courses     []types.CourseScore `json:"courses"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRecommend runs the full pipeline for a stored user profile.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.svc.Recommend(r.Context(), uuid.MustParse(req.UserID), req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleTransitions ranks transitions for a profile supplied in the body.
// Incomplete profiles yield 200 with status cannot_rank.
func (s *Server) handleTransitions(w http.ResponseWriter, r *http.Request) {
	var req TransitionsRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.svc.RankProfile(r.Context(), req.Profile, req.Limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleMatchCourses ranks the course corpus for one skill gap.
func (s *Server) handleMatchCourses(w http.ResponseWriter, r *http.Request) {
	var req courses.MatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	scores, err := s.svc.MatchCourses(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MatchCoursesResponse{
		TargetTitle: req.TargetTitle,
		Courses:     scores,
	})
}

// decodeRequest decodes a JSON body into dst and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrBadRequest{Cause: errors.New("empty body")}
		}
		return &ErrBadRequest{Cause: err}
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}
