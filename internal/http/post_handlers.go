package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/queue"
)

// CreatePost godoc
// @Summary Post in a community
// @Tags posts
// @Accept json
// @Produce json
// @Param payload body object true "post document with communityID"
// @Success 201 {object} domain.InsertResult
// @Failure 400 {object} errorBody
// @Router /post-in-community [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var in domain.Post
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	res, err := h.Svc.CreatePost(c.Request.Context(), &in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, queue.PostCreated{PostID: res.InsertedID, CommunityID: in.CommunityID})
	c.JSON(http.StatusCreated, res)
}

// ViewPosts godoc
// @Summary Posts of a community
// @Tags posts
// @Produce json
// @Param communityID path string true "community id as stored on posts"
// @Success 200 {array} object
// @Router /view-posts/{communityID} [get]
func (h *Handler) ViewPosts(c *gin.Context) {
	items, err := h.Svc.ListPostsByCommunity(c.Request.Context(), c.Param("communityID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AllPosts godoc
// @Summary All posts
// @Tags posts
// @Produce json
// @Success 200 {array} object
// @Router /all-posts [get]
func (h *Handler) AllPosts(c *gin.Context) {
	items, err := h.Svc.ListAllPosts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
