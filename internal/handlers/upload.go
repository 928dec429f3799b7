package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lawFirmWebsite/internal/uploads"
	"lawFirmWebsite/internal/utils"
)

// handleUpload stores the multipart field "file" and answers {"filePath": ...}.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.Config.Upload.MaxBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartSlack)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondWithError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(maxBytes))
			return
		}
		utils.BadRequestError(w, "No file uploaded")
		return
	}
	defer file.Close()

	img, err := uploads.ReadImage(file, maxBytes)
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		utils.RespondWithError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(maxBytes))
		return
	case errors.Is(err, uploads.ErrUnsupportedType):
		utils.BadRequestError(w, "Only PNG, JPEG, GIF and WebP images are allowed")
		return
	case errors.Is(err, uploads.ErrEmpty):
		utils.BadRequestError(w, "Uploaded file is empty")
		return
	case err != nil:
		s.Logger.WithError(err).Error("Failed to read upload")
		utils.InternalServerError(w, "Failed to read uploaded file")
		return
	}

	path, err := uploads.SaveImage(r.Context(), s.Uploads, img)
	if err != nil {
		s.Logger.WithError(err).WithField("filename", header.Filename).Error("Failed to store upload")
		utils.InternalServerError(w, "Failed to store uploaded file")
		return
	}

	s.Logger.WithFields(map[string]interface{}{
		"filename":     header.Filename,
		"content_type": img.ContentType,
		"size":         len(img.Data),
		"path":         path,
	}).Info("Image uploaded")

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"filePath": path})
}

func tooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("File exceeds the %s upload limit", formatBytes(maxBytes))
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// uploadedFilesHandler serves stored uploads when they live on this server.
func (s *Server) uploadedFilesHandler() http.Handler {
	switch store := s.Uploads.(type) {
	case *uploads.FilesystemStore:
		files := http.FileServer(http.Dir(store.Dir))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=86400")
			files.ServeHTTP(w, r)
		})
	case *uploads.MemoryStore:
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f, ok := store.Get(r.URL.Path)
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", f.ContentType)
			w.Write(f.Data)
		})
	default:
		return http.NotFoundHandler()
	}
}
