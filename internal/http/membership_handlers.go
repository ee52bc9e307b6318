package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/queue"
)

type joinReq struct {
	UserEmail string `json:"userEmail"`
}

type leaveReq struct {
	Email string `json:"email"`
}

// JoinCommunity godoc
// @Summary Join community
// @Description Adds the email to members and the community id to the user.
// @Tags membership
// @Accept json
// @Produce json
// @Param id path string true "community ObjectID (hex)"
// @Param payload body joinReq true "joining user"
// @Success 200 {object} domain.UpdateResult
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /joinCommunity/{id} [patch]
func (h *Handler) JoinCommunity(c *gin.Context) {
	var in joinReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	id := c.Param("id")
	res, err := h.Svc.JoinCommunity(c.Request.Context(), id, in.UserEmail)
	if err != nil {
		h.fail(c, err, emailField(in.UserEmail))
		return
	}
	h.publish(c, queue.MemberJoined{CommunityID: id, Email: in.UserEmail})
	c.JSON(http.StatusOK, res)
}

// RecordUserCommunity godoc
// @Summary Record a joined community on the user
// @Tags membership
// @Accept json
// @Produce json
// @Param id path string true "community ObjectID (hex)"
// @Param payload body joinReq true "user"
// @Success 200 {object} domain.UpdateResult
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /updateUser/{id} [patch]
func (h *Handler) RecordUserCommunity(c *gin.Context) {
	var in joinReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	res, err := h.Svc.RecordUserCommunity(c.Request.Context(), c.Param("id"), in.UserEmail)
	if err != nil {
		h.fail(c, err, emailField(in.UserEmail))
		return
	}
	c.JSON(http.StatusOK, res)
}

// LeaveCommunity godoc
// @Summary Leave community
// @Tags membership
// @Accept json
// @Produce json
// @Param id path string true "community ObjectID (hex)"
// @Param payload body leaveReq true "leaving user"
// @Success 200 {object} domain.UpdateResult
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /leaveCommunity/{id} [patch]
func (h *Handler) LeaveCommunity(c *gin.Context) {
	var in leaveReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	id := c.Param("id")
	res, err := h.Svc.LeaveCommunity(c.Request.Context(), id, in.Email)
	if err != nil {
		h.fail(c, err, emailField(in.Email))
		return
	}
	h.publish(c, queue.MemberLeft{CommunityID: id, Email: in.Email})
	c.JSON(http.StatusOK, res)
}
