package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/validation"
	"lawFirmWebsite/internal/utils"
)

// collection serves the JSON CRUD endpoints of one record type.
type collection[T any] struct {
	s        *Server
	resource string
	repo     database.Repository[T]
	prepare  func(*T) error
}

func newCollection[T any](s *Server, resource string, repo database.Repository[T], prepare func(*T) error) *collection[T] {
	return &collection[T]{s: s, resource: resource, repo: repo, prepare: prepare}
}

// mountCollection registers list/get/create/update/delete under path. When publicCreate is set,
// POST is open to visitors (rate limited) and uses it instead of the admin validation.
func mountCollection[T any](s *Server, api *mux.Router, path string, c *collection[T], publicCreate func(*T) error) {
	api.Handle(path, s.AdminAPIMiddleware(c.handleList)).Methods("GET")
	if publicCreate != nil {
		api.Handle(path, s.RateLimitMiddleware(s.publicLimiter)(c.create(publicCreate))).Methods("POST")
	} else {
		api.Handle(path, s.AdminAPIMiddleware(s.invalidateOnSuccess(c.create(c.prepare)))).Methods("POST")
	}
	api.Handle(path+"/{id}", s.AdminAPIMiddleware(c.handleGet)).Methods("GET")
	api.Handle(path+"/{id}", s.AdminAPIMiddleware(s.invalidateOnSuccess(c.handleUpdate))).Methods("PUT")
	api.Handle(path+"/{id}", s.AdminAPIMiddleware(s.invalidateOnSuccess(c.handleDelete))).Methods("DELETE")
}

func (c *collection[T]) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := c.repo.List(r.Context(), database.ListOptions{})
	if err != nil {
		c.s.respondWithStoreError(w, r, err, c.resource)
		return
	}
	utils.NoCache(w)
	utils.RespondWithJSON(w, http.StatusOK, records)
}

func (c *collection[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := c.repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		c.s.respondWithStoreError(w, r, err, c.resource)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, record)
}

func (c *collection[T]) create(prepare func(*T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record T
		if !decodeJSON(w, r, &record) {
			return
		}
		if err := prepare(&record); err != nil {
			c.s.respondWithStoreError(w, r, err, c.resource)
			return
		}
		if err := c.repo.Create(r.Context(), &record); err != nil {
			c.s.respondWithStoreError(w, r, err, c.resource)
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, record)
	}
}

func (c *collection[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var record T
	if !decodeJSON(w, r, &record) {
		return
	}
	if err := c.prepare(&record); err != nil {
		c.s.respondWithStoreError(w, r, err, c.resource)
		return
	}
	if err := c.repo.Update(r.Context(), id, &record); err != nil {
		c.s.respondWithStoreError(w, r, err, c.resource)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, record)
}

func (c *collection[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := c.repo.Delete(r.Context(), id); err != nil {
		c.s.respondWithStoreError(w, r, err, c.resource)
		return
	}

	email, _ := utils.GetUserEmail(r)
	c.s.Logger.WithFields(map[string]interface{}{
		"resource": c.resource,
		"id":       id,
		"by":       email,
	}).Info("Record deleted")

	utils.RespondWithSuccess(w, map[string]string{"id": id}, "")
}

// decodeJSON reads a JSON body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		utils.BadRequestError(w, "Invalid JSON body")
		return false
	}
	return true
}

// respondWithStoreError maps validation and store errors onto API status codes.
func (s *Server) respondWithStoreError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		utils.BadRequestError(w, validationErr.Error())
	case errors.Is(err, database.ErrNotFound):
		utils.NotFoundError(w, resource)
	case errors.Is(err, database.ErrConflict):
		utils.ConflictError(w, resource+" already exists")
	default:
		s.Logger.WithError(err).WithFields(map[string]interface{}{
			"resource": resource,
			"method":   r.Method,
			"path":     r.URL.Path,
		}).Error("Store operation failed")
		utils.DatabaseError(w)
	}
}
