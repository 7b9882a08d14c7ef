package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

type PostHandler struct {
	Service  *services.PostService
	Settings *services.SystemSettingService
}

func NewPostHandler(s *services.PostService, settings *services.SystemSettingService) *PostHandler {
	return &PostHandler{Service: s, Settings: settings}
}

// CreatePost publishes to the community feed. Plain JSON posts text only;
// multipart adds an optional image under the file field.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var req models.CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		post, err := h.Service.CreatePost(r.Context(), userID, req.Body, "", "", nil)
		if err != nil {
			serviceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, post)
		return
	}

	maxBytes := uploadLimitBytes(r, h.Settings)
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "file exceeds the upload size limit")
		return
	}

	var (
		filename    string
		contentType string
		reader      io.Reader
	)
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		contentType = header.Header.Get("Content-Type")
		if !isImageContentType(contentType) {
			respondError(w, http.StatusBadRequest, "post image must be a JPEG, PNG or WebP image")
			return
		}
		filename = header.Filename
		reader = file
	}

	post, err := h.Service.CreatePost(r.Context(), userID, r.FormValue("body"), filename, contentType, reader)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// Feed returns a page of posts, newest first
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	posts, err := h.Service.ListFeed(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load feed")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.Service.GetPost(r.Context(), postID)
	if err != nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// DeletePost removes the caller's own post; admins can remove any post
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeletePost(r.Context(), postID, userID, middleware.IsAdmin(r.Context())); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.Service.CreateComment(r.Context(), postID, userID, req.Body)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := h.Service.ListComments(r.Context(), postID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load comments")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	commentID, err := pathID(r, "commentID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteComment(r.Context(), commentID, userID, middleware.IsAdmin(r.Context())); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
