package api

import (
	"net/http"

	"github.com/Domenick1991/saraye/internal/service/property"
	"github.com/Domenick1991/saraye/internal/service/review"
	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	properties property.PropertyUseCase
	reviews    review.ReviewUseCase
}

func NewPropertyHandler(properties property.PropertyUseCase, reviews review.ReviewUseCase) *PropertyHandler {
	return &PropertyHandler{properties: properties, reviews: reviews}
}

func (h *PropertyHandler) Register(router *gin.RouterGroup) {
	router.GET("/properties", h.search)
	router.GET("/properties/:id", h.get)
	router.GET("/properties/:id/reviews", h.listReviews)
	router.GET("/amenities", h.amenities)
	router.POST("/properties", h.create)
	router.PUT("/properties/:id", h.update)
	router.DELETE("/properties/:id", h.deactivate)
	router.GET("/host/properties", h.hostList)
}

func (h *PropertyHandler) search(c *gin.Context) {
	var q property.SearchInput
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	found, err := h.properties.SearchProperties(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPropertyResponses(found))
}

func (h *PropertyHandler) get(c *gin.Context) {
	p, err := h.properties.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPropertyResponse(p))
}

func (h *PropertyHandler) listReviews(c *gin.Context) {
	reviews, err := h.reviews.ListPropertyReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]reviewResponse, len(reviews))
	for i := range reviews {
		out[i] = toReviewResponse(&reviews[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *PropertyHandler) amenities(c *gin.Context) {
	amenities, err := h.properties.ListAmenities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAmenityResponses(amenities))
}

func (h *PropertyHandler) create(c *gin.Context) {
	var req property.PropertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.properties.CreateProperty(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPropertyResponse(p))
}

func (h *PropertyHandler) update(c *gin.Context) {
	var req property.PropertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.properties.UpdateProperty(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPropertyResponse(p))
}

func (h *PropertyHandler) deactivate(c *gin.Context) {
	if err := h.properties.DeactivateProperty(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PropertyHandler) hostList(c *gin.Context) {
	mine, err := h.properties.ListHostProperties(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPropertyResponses(mine))
}
