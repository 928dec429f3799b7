package handlers

import (
	"errors"
	"net/http"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/utils"
)

const contactResource = "Contact info"

// handleGetContactInfo answers the record, or null when none has been saved.
func (s *Server) handleGetContactInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.Store.ContactInfo.Current(r.Context())
	if err != nil {
		s.respondWithStoreError(w, r, err, contactResource)
		return
	}
	utils.NoCache(w)
	utils.RespondWithJSON(w, http.StatusOK, info)
}

func (s *Server) handleCreateContactInfo(w http.ResponseWriter, r *http.Request) {
	var info models.ContactInfo
	if !decodeJSON(w, r, &info) {
		return
	}
	if err := info.Prepare(); err != nil {
		s.respondWithStoreError(w, r, err, contactResource)
		return
	}

	if err := s.Store.ContactInfo.Create(r.Context(), &info); err != nil {
		if errors.Is(err, database.ErrConflict) {
			utils.ConflictError(w, "Contact info already exists; use PUT to update it")
			return
		}
		s.respondWithStoreError(w, r, err, contactResource)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, info)
}

func (s *Server) handleUpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	var info models.ContactInfo
	if !decodeJSON(w, r, &info) {
		return
	}
	if err := info.Prepare(); err != nil {
		s.respondWithStoreError(w, r, err, contactResource)
		return
	}

	if err := s.Store.ContactInfo.Update(r.Context(), &info); err != nil {
		s.respondWithStoreError(w, r, err, contactResource)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, info)
}
