package web

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/fragshare/internal/common"
	"github.com/dmitrijs2005/fragshare/internal/server/language"
	"github.com/dmitrijs2005/fragshare/internal/server/mimetype"
	"github.com/dmitrijs2005/fragshare/internal/server/models"
	"github.com/dmitrijs2005/fragshare/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (s *Server) shareFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if header.Size > s.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds the %d byte limit", s.maxUploadSize),
		})
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	mt, ok := mimetype.FromExtension(ext)
	if !ok {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"error":   fmt.Sprintf("unsupported file type: %q", ext),
			"allowed": mimetype.Extensions(),
		})
		return
	}

	expiresAt, err := parseExpiry(c.PostForm("expires_at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer f.Close()

	record, err := s.uploads.Upload(c.Request.Context(), services.UploadRequest{
		Content:   f,
		Filename:  header.Filename,
		MimeType:  string(mt),
		Size:      header.Size,
		OwnerID:   currentUserID(c),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := gin.H{
		"id":        record.ID,
		"filename":  record.Filename,
		"mime_type": record.MimeType,
		"size":      record.Size,
		"checksum":  record.Checksum,
	}
	if len(record.Links) > 0 {
		resp["link"] = linkResponse(record.Links[0])
	}

	c.JSON(http.StatusCreated, resp)
}

type shareCodeRequest struct {
	Title     string `json:"title" binding:"required"`
	Language  string `json:"language" binding:"required"`
	Content   string `json:"content" binding:"required"`
	ExpiresAt string `json:"expires_at"`
}

func (s *Server) shareCode(c *gin.Context) {
	var req shareCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lang, ok := language.Parse(req.Language)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown language: %q", req.Language)})
		return
	}

	// The title becomes the stored filename; reject anything that is not
	// a bare name.
	if req.Title != filepath.Base(req.Title) || req.Title == "." || req.Title == ".." {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must be a plain filename"})
		return
	}

	if int64(len(req.Content)) > s.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("snippet exceeds the %d byte limit", s.maxUploadSize),
		})
		return
	}

	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filename := req.Title
	if filepath.Ext(filename) == "" {
		filename += ".txt"
	}

	record, err := s.uploads.Upload(c.Request.Context(), services.UploadRequest{
		Content:   strings.NewReader(req.Content),
		Filename:  filename,
		MimeType:  "text/plain; charset=utf-8",
		Size:      int64(len(req.Content)),
		OwnerID:   currentUserID(c),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := gin.H{
		"id":            record.ID,
		"filename":      record.Filename,
		"language":      string(lang),
		"language_name": lang.DisplayName(),
		"size":          record.Size,
		"checksum":      record.Checksum,
	}
	if len(record.Links) > 0 {
		resp["link"] = linkResponse(record.Links[0])
	}

	c.JSON(http.StatusCreated, resp)
}

type shareLinkRequest struct {
	FileID string `json:"file_id" binding:"required"`
}

func (s *Server) shareLink(c *gin.Context) {
	var req shareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := currentUserID(c)

	link, created, err := s.links.CreateOrGetLink(c.Request.Context(), req.FileID, &owner)
	if err != nil {
		s.writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, linkResponse(link))
}

func (s *Server) resolveLink(c *gin.Context) {
	resolved, err := s.links.Resolve(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer resolved.Content.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("%s; filename=%q", resolved.Disposition, resolved.Filename),
	}
	c.DataFromReader(http.StatusOK, resolved.Size, resolved.MimeType, resolved.Content, headers)
}

// parseExpiry interprets an optional RFC 3339 timestamp. An empty value
// means no expiry.
func parseExpiry(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("expires_at must be RFC 3339: %v", err)
	}
	return &t, nil
}

func linkResponse(link *models.ShareLink) gin.H {
	resp := gin.H{
		"id":   link.ID,
		"slug": link.Slug,
		"url":  "/l/" + link.Slug,
	}
	if link.ExpiresAt != nil {
		resp["expires_at"] = link.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

// writeError maps service errors onto HTTP status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	var dup *common.DuplicateFileError

	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{
			"error":    dup.Error(),
			"checksum": dup.Checksum,
			"filename": dup.Filename,
		})
	case errors.Is(err, common.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, common.ErrLinkRevoked):
		c.JSON(http.StatusForbidden, gin.H{"error": "link revoked"})
	case errors.Is(err, common.ErrLinkExpired):
		c.JSON(http.StatusGone, gin.H{"error": "link expired"})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
