package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"wanderlog/pkg/scoring"
	"wanderlog/places-service/internal/app/places/entity"
	"wanderlog/places-service/internal/app/places/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PlaceServiceInterface interface {
	CreatePlace(ctx context.Context, userID uuid.UUID, req *entity.CreatePlaceRequest) (*entity.Place, error)
	GetPlacesByUser(ctx context.Context, userID uuid.UUID) ([]entity.Place, error)
	GetPlacesByTag(ctx context.Context, tag string, minScore, maxScore float64) ([]entity.Place, error)
	GetAllPlacesWithComments(ctx context.Context) ([]entity.PlaceWithComments, error)
	GetPlaceWithComments(ctx context.Context, id uuid.UUID) (*entity.PlaceWithComments, error)
	SearchPlacesWithComments(ctx context.Context, text string) ([]entity.PlaceWithComments, error)
}

type RatingServiceInterface interface {
	UpdatePlaceRating(ctx context.Context, placeID uuid.UUID) (float64, error)
}

type PlaceHandler struct {
	placeService  PlaceServiceInterface
	ratingService RatingServiceInterface
	validator     *validator.Validate
}

func NewPlaceHandler(placeService PlaceServiceInterface, ratingService RatingServiceInterface) *PlaceHandler {
	return &PlaceHandler{
		placeService:  placeService,
		ratingService: ratingService,
		validator:     validator.New(),
	}
}

func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userIDStr, ok := userID.(string)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user ID")
		return
	}

	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid user ID")
		return
	}

	var req entity.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	place, err := h.placeService.CreatePlace(c.Request.Context(), uid, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTag) {
			respondError(c, http.StatusBadRequest, "Tag must not contain commas")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create place")
		return
	}

	respondSuccess(c, http.StatusCreated, "Place created", entity.NewPlaceResponse(*place))
}

func (h *PlaceHandler) GetAllPlaces(c *gin.Context) {
	places, err := h.placeService.GetAllPlacesWithComments(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get places")
		return
	}

	respondList(c, http.StatusOK, "Places retrieved", places)
}

func (h *PlaceHandler) GetPlaceByID(c *gin.Context) {
	placeID, err := uuid.Parse(c.Param("place_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid place ID")
		return
	}

	place, err := h.placeService.GetPlaceWithComments(c.Request.Context(), placeID)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			respondError(c, http.StatusNotFound, "Place not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get place")
		return
	}

	respondSuccess(c, http.StatusOK, "Place retrieved", place)
}

func (h *PlaceHandler) GetPlacesByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	places, err := h.placeService.GetPlacesByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get places")
		return
	}

	respondList(c, http.StatusOK, "Places retrieved", entity.NewPlaceResponses(places))
}

func (h *PlaceHandler) GetPlacesByTag(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		respondError(c, http.StatusBadRequest, "Tag is required")
		return
	}

	minScore, err := parseScoreQuery(c, "minscore", 0)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid minscore")
		return
	}

	maxScore, err := parseScoreQuery(c, "maxscore", scoring.RatingScale)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid maxscore")
		return
	}

	places, err := h.placeService.GetPlacesByTag(c.Request.Context(), tag, minScore, maxScore)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get places")
		return
	}

	respondList(c, http.StatusOK, "Places retrieved", entity.NewPlaceResponses(places))
}

func (h *PlaceHandler) SearchPlaces(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, "Search query is required")
		return
	}

	places, err := h.placeService.SearchPlacesWithComments(c.Request.Context(), query)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to search places")
		return
	}

	respondList(c, http.StatusOK, "Places retrieved", places)
}

// ScoreAndUpdate пересчитывает рейтинг места по всем его комментариям.
// В отличие от остальных эндпоинтов отдает плоский ответ {"rating_score": x}
func (h *PlaceHandler) ScoreAndUpdate(c *gin.Context) {
	placeID, err := uuid.Parse(c.Param("place_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid place ID")
		return
	}

	rating, err := h.ratingService.UpdatePlaceRating(c.Request.Context(), placeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			respondError(c, http.StatusNotFound, "Place not found")
		case errors.Is(err, service.ErrNoComments):
			respondError(c, http.StatusUnprocessableEntity, "Place has no comments to score")
		case errors.Is(err, service.ErrScorerUnavailable):
			respondError(c, http.StatusBadGateway, "Text scorer unavailable")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update rating")
		}
		return
	}

	c.JSON(http.StatusOK, entity.RatingResponse{RatingScore: rating})
}

func parseScoreQuery(c *gin.Context, name string, fallback float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
