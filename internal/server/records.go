package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/model"
	"inkwell/internal/server/store"
)

// createRequest is the payload for POST /api/blogs. The edit key is
// consumed here, hashed, and forgotten.
type createRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	AuthorName string `json:"authorName"`
	EditKey    string `json:"editKey"`
}

// updateRequest is the payload for PUT /api/blogs/{id}. The author name
// is accepted for wire compatibility but ignored: author identity is
// fixed at creation.
type updateRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	AuthorName string `json:"authorName"`
	EditKey    string `json:"editKey"`
}

type deleteRequest struct {
	EditKey string `json:"editKey"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Malformed JSON body", nil)
		return false
	}
	return true
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.log.Error("listing records", "error", err)
		writeInternalError(w)
		return
	}
	writeData(w, http.StatusOK, records)
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.records.Get(r.Context(), id)
	if errors.Is(err, store.ErrNoRecord) {
		writeNotFound(w)
		return
	}
	if err != nil {
		s.log.Error("fetching record", "id", id, "error", err)
		writeInternalError(w)
		return
	}

	// The counter is owned here so clients never increment locally and
	// double-count across re-renders. The returned record reflects this
	// view.
	if err := s.records.IncrementViews(r.Context(), id); err != nil {
		s.log.Warn("incrementing views", "id", id, "error", err)
	} else {
		rec.Views++
	}
	writeData(w, http.StatusOK, rec)
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fields := validateFields(req.Title, req.Body, req.AuthorName, req.EditKey); fields != nil {
		writeValidationError(w, fields)
		return
	}

	now := s.now()
	rec := model.Record{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Body:        req.Body,
		AuthorName:  req.AuthorName,
		Summary:     s.writing.Summarize(r.Context(), req.Body),
		Sentiment:   s.writing.Sentiment(r.Context(), req.Body),
		ReadingTime: model.EstimateReadingTime(req.Body),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.records.Insert(r.Context(), rec, HashEditKey(req.EditKey)); err != nil {
		s.log.Error("creating record", "error", err)
		writeInternalError(w)
		return
	}
	s.log.Info("record created", "id", rec.ID, "author", rec.AuthorName)
	writeData(w, http.StatusCreated, rec)
}

func (s *Server) updateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	// The edit key is deliberately not validated for presence: an empty
	// key must fail authorization exactly like a wrong one.
	if fields := validateFields(req.Title, req.Body, "-", "-"); fields != nil {
		writeValidationError(w, fields)
		return
	}

	current, err := s.records.Get(r.Context(), id)
	if errors.Is(err, store.ErrNoRecord) {
		writeNotFound(w)
		return
	}
	if err != nil {
		s.log.Error("fetching record", "id", id, "error", err)
		writeInternalError(w)
		return
	}
	if !s.authorize(w, r, id, req.EditKey) {
		return
	}

	updated := current
	updated.Title = req.Title
	updated.Body = req.Body
	if req.Body != current.Body {
		// Derived fields follow the content they describe.
		updated.Summary = s.writing.Summarize(r.Context(), req.Body)
		updated.Sentiment = s.writing.Sentiment(r.Context(), req.Body)
		updated.ReadingTime = model.EstimateReadingTime(req.Body)
	}
	updated.UpdatedAt = s.now()

	if err := s.records.Update(r.Context(), updated, updated.UpdatedAt); err != nil {
		if errors.Is(err, store.ErrNoRecord) {
			writeNotFound(w)
			return
		}
		s.log.Error("updating record", "id", id, "error", err)
		writeInternalError(w)
		return
	}
	s.log.Info("record updated", "id", id)
	writeData(w, http.StatusOK, updated)
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req deleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	// An absent key goes through the same authorization path as a wrong
	// one; both are "invalid edit key", never a crash or a special case.
	if !s.authorize(w, r, id, req.EditKey) {
		return
	}
	if err := s.records.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNoRecord) {
			writeNotFound(w)
			return
		}
		s.log.Error("deleting record", "id", id, "error", err)
		writeInternalError(w)
		return
	}
	s.log.Info("record deleted", "id", id)
	writeData(w, http.StatusOK, struct{}{})
}

// authorize resolves the stored key hash for id and checks the supplied
// key against it, writing the appropriate error response on failure.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, id, editKey string) bool {
	hash, err := s.records.EditKeyHash(r.Context(), id)
	if errors.Is(err, store.ErrNoRecord) {
		writeNotFound(w)
		return false
	}
	if err != nil {
		s.log.Error("fetching edit key hash", "id", id, "error", err)
		writeInternalError(w)
		return false
	}
	if !editKeyMatches(editKey, hash) {
		writeInvalidEditKey(w)
		return false
	}
	return true
}

// validateFields collects empty required fields. Pass a placeholder for
// fields the operation does not own (update ignores the author name).
func validateFields(title, body, authorName, editKey string) map[string]string {
	fields := map[string]string{}
	if title == "" {
		fields["title"] = "title is required"
	}
	if body == "" {
		fields["body"] = "content is required"
	}
	if authorName == "" {
		fields["authorName"] = "author name is required"
	}
	if editKey == "" {
		fields["editKey"] = "edit key is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
