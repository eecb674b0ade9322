package community

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, files *media.Service) {
	r.Post("/posts", createPostHandler(svc, files))
	r.Get("/posts", feedHandler(svc, files))
	r.Get("/posts/{postID}", getPostHandler(svc, files))
	r.Delete("/posts/{postID}", deletePostHandler(svc))
	r.Post("/posts/{postID}/image", uploadPostImageHandler(svc, files))
	r.Put("/posts/{postID}/like", likeHandler(svc, files, true))
	r.Delete("/posts/{postID}/like", likeHandler(svc, files, false))
	r.Post("/posts/{postID}/comments", createCommentHandler(svc))
	r.Get("/posts/{postID}/comments", listCommentsHandler(svc))
	r.Delete("/comments/{commentID}", deleteCommentHandler(svc))
}

type createPostRequest struct {
	Body  string `json:"body"`
	PetID string `json:"pet_id,omitempty"`
}

type createCommentRequest struct {
	Body string `json:"body"`
}

type postResponse struct {
	ID           string    `json:"id"`
	AuthorUserID string    `json:"author_user_id"`
	PetID        string    `json:"pet_id,omitempty"`
	Body         string    `json:"body"`
	ImageURL     string    `json:"image_url,omitempty"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	LikedByMe    bool      `json:"liked_by_me"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type commentResponse struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	AuthorUserID string    `json:"author_user_id"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}

// createPostHandler godoc
// @Summary Publicar post
// @Description El pet_id es opcional y debe ser una mascota propia.
// @Tags community
// @Accept json
// @Produce json
// @Param payload body createPostRequest true "Datos"
// @Success 201 {object} postResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /posts [post]
func createPostHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPostRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.CreatePost(r.Context(), claims.UserID, CreatePostInput{Body: req.Body, PetID: req.PetID})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toPostResponse(r, files, PostView{Post: p}))
	}
}

// feedHandler godoc
// @Summary Feed de la comunidad
// @Description Más nuevos primero. Para la página siguiente mandar before = created_at del último post.
// @Tags community
// @Produce json
// @Param before query string false "RFC3339"
// @Param limit query int false "1-100, default 20"
// @Success 200 {array} postResponse
// @Failure 400 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /posts [get]
func feedHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var before *time.Time
		if v := strings.TrimSpace(r.URL.Query().Get("before")); v != "" {
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "before must be RFC3339")
				return
			}
			before = &t
		}
		limit := httpx.QueryInt(r, "limit", DefaultFeedLimit, 1, MaxFeedLimit)

		items, err := svc.Feed(r.Context(), claims.UserID, before, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]postResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toPostResponse(r, files, v))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getPostHandler godoc
// @Summary Ver post
// @Tags community
// @Produce json
// @Param postID path string true "ID del post"
// @Success 200 {object} postResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /posts/{postID} [get]
func getPostHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		v, err := svc.GetPost(r.Context(), chi.URLParam(r, "postID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(r, files, v))
	}
}

// deletePostHandler godoc
// @Summary Borrar post
// @Description Solo el autor.
// @Tags community
// @Produce json
// @Param postID path string true "ID del post"
// @Success 204
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /posts/{postID} [delete]
func deletePostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		actor := Actor{UserID: claims.UserID, PlatformAdmin: claims.IsPlatformAdmin()}
		if err := svc.DeletePost(r.Context(), chi.URLParam(r, "postID"), actor); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadPostImageHandler godoc
// @Summary Subir imagen del post
// @Description Solo el autor. Reemplaza la imagen anterior.
// @Tags community
// @Accept multipart/form-data
// @Produce json
// @Param postID path string true "ID del post"
// @Param file formData file true "Archivo"
// @Success 200 {object} postResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /posts/{postID}/image [post]
func uploadPostImageHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		up, err := httpx.ReadUpload(w, r, "file", files.MaxBytes())
		if err != nil {
			media.WriteUploadError(w, err)
			return
		}
		defer up.Body.Close()

		p, err := svc.SetPostImage(r.Context(), chi.URLParam(r, "postID"), claims.UserID, up.Body)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(r, files, PostView{Post: p}))
	}
}

// likeHandler godoc
// @Summary Dar o quitar like
// @Description PUT agrega, DELETE quita. Ambos son idempotentes.
// @Tags community
// @Produce json
// @Param postID path string true "ID del post"
// @Success 200 {object} postResponse
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /posts/{postID}/like [put]
// @Router /posts/{postID}/like [delete]
func likeHandler(svc *Service, files *media.Service, like bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		postID := chi.URLParam(r, "postID")
		var (
			v   PostView
			err error
		)
		if like {
			v, err = svc.Like(r.Context(), postID, claims.UserID)
		} else {
			v, err = svc.Unlike(r.Context(), postID, claims.UserID)
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(r, files, v))
	}
}

// createCommentHandler godoc
// @Summary Comentar post
// @Tags community
// @Accept json
// @Produce json
// @Param postID path string true "ID del post"
// @Param payload body createCommentRequest true "Datos"
// @Success 201 {object} commentResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /posts/{postID}/comments [post]
func createCommentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createCommentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.Comment(r.Context(), chi.URLParam(r, "postID"), claims.UserID, req.Body)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toCommentResponse(c))
	}
}

// listCommentsHandler godoc
// @Summary Comentarios de un post
// @Tags community
// @Produce json
// @Param postID path string true "ID del post"
// @Success 200 {array} commentResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /posts/{postID}/comments [get]
func listCommentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListComments(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]commentResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCommentResponse(c))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// deleteCommentHandler godoc
// @Summary Borrar comentario
// @Description El autor del comentario o el del post.
// @Tags community
// @Produce json
// @Param commentID path string true "ID del comentario"
// @Success 204
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /comments/{commentID} [delete]
func deleteCommentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		actor := Actor{UserID: claims.UserID, PlatformAdmin: claims.IsPlatformAdmin()}
		if err := svc.DeleteComment(r.Context(), chi.URLParam(r, "commentID"), actor); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadState):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, media.ErrTooLarge), errors.Is(err, media.ErrUnsupportedContent), errors.Is(err, media.ErrInvalidInput):
		media.WriteUploadError(w, err)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toPostResponse(r *http.Request, files *media.Service, v PostView) postResponse {
	return postResponse{
		ID:           v.ID,
		AuthorUserID: v.AuthorUserID,
		PetID:        v.PetID,
		Body:         v.Body,
		ImageURL:     files.URLOrEmpty(r.Context(), v.ImageKey),
		LikeCount:    v.LikeCount,
		CommentCount: v.CommentCount,
		LikedByMe:    v.LikedByMe,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toCommentResponse(c Comment) commentResponse {
	return commentResponse{
		ID:           c.ID,
		PostID:       c.PostID,
		AuthorUserID: c.AuthorUserID,
		Body:         c.Body,
		CreatedAt:    c.CreatedAt,
	}
}
