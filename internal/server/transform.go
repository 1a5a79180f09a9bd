package server

import (
	"context"
	"net/http"
)

type transformRequest struct {
	Text string `json:"text"`
}

type transformResponse struct {
	Result string `json:"result"`
}

func (s *Server) aiOutline(w http.ResponseWriter, r *http.Request) {
	s.transform(w, r, "outline", s.writing.Outline)
}

func (s *Server) aiPolish(w http.ResponseWriter, r *http.Request) {
	s.transform(w, r, "polish", s.writing.Polish)
}

func (s *Server) aiSuggestions(w http.ResponseWriter, r *http.Request) {
	s.transform(w, r, "suggestions", s.writing.Suggestions)
}

// transform runs one writing transformation. All failures collapse into
// one generic transform_failed class; the client has nothing useful to
// do with upstream specifics, and upstream errors may leak prompt or
// account details.
func (s *Server) transform(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, string) (string, error)) {
	var req transformRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := fn(r.Context(), req.Text)
	if err != nil {
		s.log.Warn("transformation failed", "op", op, "error", err)
		writeError(w, http.StatusBadGateway, codeTransformFailed,
			"The "+op+" transformation failed; try again", nil)
		return
	}
	writeData(w, http.StatusOK, transformResponse{Result: result})
}
