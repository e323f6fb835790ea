package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/service/booking"
	"github.com/Domenick1991/saraye/internal/service/payment"
	"github.com/Domenick1991/saraye/internal/service/review"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings booking.BookingUseCase
	payments payment.PaymentUseCase
	reviews  review.ReviewUseCase
}

type createBookingRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Guests     int    `json:"guests"`
}

type paymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method" binding:"required"`
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func NewBookingHandler(bookings booking.BookingUseCase, payments payment.PaymentUseCase, reviews review.ReviewUseCase) *BookingHandler {
	return &BookingHandler{bookings: bookings, payments: payments, reviews: reviews}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/:id", h.get)
	router.GET("/guest/bookings", h.guestList)
	router.GET("/host/bookings", h.hostList)
	router.GET("/host/bookings/pending", h.hostPending)
	router.POST("/bookings/:id/approve", h.approve)
	router.POST("/bookings/:id/decline", h.decline)
	router.POST("/bookings/:id/cancel", h.cancel)
	router.POST("/bookings/:id/payment", h.pay)
	router.GET("/bookings/:id/payment", h.getPayment)
	router.POST("/bookings/:id/review", h.review)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.bookings.CreateBooking(c.Request.Context(), actor(c), booking.CreateBookingInput{
		PropertyID: req.PropertyID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.bookings.GetBooking(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) guestList(c *gin.Context) {
	h.list(c, h.bookings.ListGuestBookings)
}

func (h *BookingHandler) hostList(c *gin.Context) {
	h.list(c, h.bookings.ListHostBookings)
}

func (h *BookingHandler) hostPending(c *gin.Context) {
	h.list(c, h.bookings.ListPendingForHost)
}

func (h *BookingHandler) list(c *gin.Context, fetch func(ctx context.Context, actor *domain.User) ([]domain.Booking, error)) {
	bookings, err := fetch(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) approve(c *gin.Context) {
	h.transition(c, h.bookings.ApproveBooking)
}

func (h *BookingHandler) decline(c *gin.Context) {
	h.transition(c, h.bookings.DeclineBooking)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	h.transition(c, h.bookings.CancelBooking)
}

func (h *BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)) {
	b, err := apply(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) pay(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.payments.Pay(c.Request.Context(), actor(c), payment.PayInput{
		BookingID:   c.Param("id"),
		AmountCents: req.AmountCents,
		Method:      req.Method,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(p))
}

func (h *BookingHandler) getPayment(c *gin.Context) {
	p, err := h.payments.GetPaymentForBooking(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(p))
}

func (h *BookingHandler) review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r, err := h.reviews.CreateReview(c.Request.Context(), actor(c), review.ReviewInput{
		BookingID: c.Param("id"),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(r))
}
