package server

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"kindbridge/internal/utils"
	"kindbridge/internal/validate"
)

// photoFromRequest pulls the optional photo part out of a multipart
// form, validates it, and stores it under a freshly generated name.
// It returns the storage key (nil when no file was attached) and a
// user-facing message when the file is rejected.
func (s *Service) photoFromRequest(r *http.Request) (*string, string) {
	// The create forms always post multipart, so the body has to be
	// parsed here even when uploads are off; ParseForm alone leaves
	// PostForm empty for multipart bodies.
	if err := r.ParseMultipartForm(s.config.UploadMaxBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, ""
		}
		return nil, "Uploaded file is too large."
	}

	if s.photos == nil || s.config.UploadDisabled {
		return nil, ""
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		// No file attached; the field is optional.
		return nil, ""
	}
	defer file.Close()

	if msg := validate.FileUpload(header.Filename, header.Size, s.config.UploadMaxBytes, s.config.UploadAllowedExts); msg != "" {
		return nil, msg
	}

	// Never persist the client-supplied filename.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := utils.NanoID() + ext

	contentType := header.Header.Get("Content-Type")
	objectKey, err := s.photos.Upload(r.Context(), key, file, contentType)
	if err != nil {
		s.logger.WithError(err).Error("failed to store uploaded photo")
		return nil, "Unable to store the uploaded file. Please try again."
	}

	return utils.StringPtr(objectKey), ""
}
