package catalog

import (
	"errors"
	"net/http"

	"poi-platform/internal/auth"
	"poi-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers serves one listing collection. Two instances are registered, one
// per kind, so the places and restaurants route groups share a single code
// path.
type Handlers struct {
	Svc  *Service
	Kind Kind
}

func (h Handlers) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), h.Kind)
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		out = []Listing{}
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) Get(c *gin.Context) {
	l, err := h.Svc.Get(c.Request.Context(), h.Kind, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	// Clients poll detail views after mutations; make sure they never see a
	// cached copy.
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	c.JSON(http.StatusOK, l)
}

func (h Handlers) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	l, err := h.Svc.Create(c.Request.Context(), h.Kind, actor, req)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Name and location are required"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, l)
}

func (h Handlers) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var upd ListingUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	l, err := h.Svc.Update(c.Request.Context(), h.Kind, actor, c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Name and location are required"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h Handlers) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), h.Kind, actor, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.Kind.Label() + " deleted successfully"})
}

type ratingRequest struct {
	Rating float64 `json:"rating"`
}

// SetRating overwrites the shared rating scalar. Any authenticated user may
// call this; there is no ownership guard here on purpose.
func (h Handlers) SetRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	if _, err := h.Svc.SetRating(c.Request.Context(), h.Kind, c.Param("id"), req.Rating); err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Rating must be between 1 and 5"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating updated", "rating": req.Rating})
}

type commentRequest struct {
	Text string `json:"text"`
}

func (h Handlers) AddComment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	cm, err := h.Svc.AddComment(c.Request.Context(), h.Kind, actor, c.Param("id"), req.Text)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Text is required"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comment": cm})
}

func (h Handlers) EditComment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	cm, err := h.Svc.EditComment(c.Request.Context(), h.Kind, actor, c.Param("id"), c.Param("commentId"), req.Text)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Text is required"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment updated", "comment": cm})
}

func (h Handlers) DeleteComment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.Svc.DeleteComment(c.Request.Context(), h.Kind, actor, c.Param("id"), c.Param("commentId")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// AdminDelete removes a listing of any kind. Admin routes only.
func AdminDelete(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
				return
			}
			logger.FromGin(c).Error("admin delete failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
	}
}

func (h Handlers) actor(c *gin.Context) (string, bool) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return "", false
	}
	return uid, true
}

// fail maps service errors onto the response contract. Unknown failures are
// logged with detail and surfaced as a generic 500.
func (h Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": h.Kind.Label() + " not found"})
	case errors.Is(err, ErrCommentNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
	case errors.Is(err, ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
	case errors.Is(err, ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
	default:
		logger.FromGin(c).Error("catalog request failed", "kind", string(h.Kind), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
