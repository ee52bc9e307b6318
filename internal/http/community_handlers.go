package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/queue"
)

// CreateCommunity godoc
// @Summary Create community
// @Tags communities
// @Accept json
// @Produce json
// @Param payload body object true "community document"
// @Success 201 {object} domain.InsertResult
// @Failure 400 {object} errorBody
// @Router /allCommunities [post]
func (h *Handler) CreateCommunity(c *gin.Context) {
	var in domain.Community
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	res, err := h.Svc.CreateCommunity(c.Request.Context(), &in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, queue.CommunityCreated{CommunityID: res.InsertedID, AdminEmail: in.AdminEmail})
	c.JSON(http.StatusCreated, res)
}

// ListCommunities godoc
// @Summary All communities
// @Tags communities
// @Produce json
// @Success 200 {array} object
// @Router /allCommunities [get]
func (h *Handler) ListCommunities(c *gin.Context) {
	items, err := h.Svc.ListCommunities(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetCommunity godoc
// @Summary Community by id
// @Tags communities
// @Produce json
// @Param id path string true "community ObjectID (hex)"
// @Success 200 {object} object
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /allCommunities/{id} [get]
func (h *Handler) GetCommunity(c *gin.Context) {
	item, err := h.Svc.GetCommunity(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CommunitiesByAdmin godoc
// @Summary Communities administered by a user
// @Tags communities
// @Produce json
// @Param userEmail query string true "admin email"
// @Success 200 {array} object
// @Failure 400 {object} errorBody
// @Router /userCommunity [get]
func (h *Handler) CommunitiesByAdmin(c *gin.Context) {
	items, err := h.Svc.ListCommunitiesByAdmin(c.Request.Context(), c.Query("userEmail"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
