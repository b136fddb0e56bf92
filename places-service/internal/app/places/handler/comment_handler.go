package handler

import (
	"context"
	"net/http"

	"wanderlog/places-service/internal/app/places/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CommentServiceInterface interface {
	CreateComment(ctx context.Context, req *entity.CreateCommentRequest) (*entity.Comment, error)
	GetCommentsByPlace(ctx context.Context, placeID string) ([]entity.Comment, error)
	GetCommentsByUser(ctx context.Context, userID string) ([]entity.Comment, error)
}

type CommentHandler struct {
	commentService CommentServiceInterface
	validator      *validator.Validate
}

func NewCommentHandler(commentService CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

// CreateComment принимает комментарий от гостя или авторизованного
// пользователя: достаточно email и имени, user_id не обязателен
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req entity.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	respondSuccess(c, http.StatusCreated, "Comment created", entity.NewCommentView(*comment))
}

func (h *CommentHandler) GetCommentsByPlace(c *gin.Context) {
	placeID, err := uuid.Parse(c.Param("place_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid place ID")
		return
	}

	comments, err := h.commentService.GetCommentsByPlace(c.Request.Context(), placeID.String())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get comments")
		return
	}

	views := make([]entity.CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, entity.NewCommentView(comment))
	}

	respondList(c, http.StatusOK, "Comments retrieved", views)
}

func (h *CommentHandler) GetCommentsByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	comments, err := h.commentService.GetCommentsByUser(c.Request.Context(), userID.String())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get comments")
		return
	}

	views := make([]entity.CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, entity.NewCommentView(comment))
	}

	respondList(c, http.StatusOK, "Comments retrieved", views)
}
