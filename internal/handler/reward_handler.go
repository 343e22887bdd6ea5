package handler

import (
	"net/http"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/logic"
	"github.com/blues/cls/internal/middleware"
	"github.com/blues/cls/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RewardHandler 奖励记录处理器
type RewardHandler struct {
	rewardLogic *logic.RewardLogic
	claimLogic  *logic.ClaimLogic
}

// NewRewardHandler 创建奖励记录处理器
func NewRewardHandler(db *gorm.DB, ownership logic.OwnershipQuery, cfg config.ChainConfig) *RewardHandler {
	return &RewardHandler{
		rewardLogic: logic.NewRewardLogic(db),
		claimLogic:  logic.NewClaimLogic(db, ownership, cfg),
	}
}

// IssueReward 发放奖励
func (h *RewardHandler) IssueReward(c *gin.Context) {
	var req IssueRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	reward, err := h.rewardLogic.Issue(logic.IssueReward{
		CampaignId: req.CampaignId,
		Issuer:     middleware.GetUserId(c),
		IssuerRole: middleware.GetRole(c),
		Recipient:  req.Recipient,
		TokenIds:   req.TokenIds,
	})
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "奖励发放成功", reward)
}

// GetRewards 获取所有奖励记录
func (h *RewardHandler) GetRewards(c *gin.Context) {
	rewards, err := h.rewardLogic.GetRewards()
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", h.withClaimStatus(c, rewards))
}

// GetReward 获取奖励记录详情
func (h *RewardHandler) GetReward(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的奖励记录ID")
		return
	}

	reward, err := h.rewardLogic.GetReward(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", RewardResponse{
		Reward:      *reward,
		ClaimStatus: h.claimLogic.Resolve(c.Request.Context(), reward),
	})
}

// GetUserRewards 获取某接收者的奖励记录，附带读取时核对的认领状态
func (h *RewardHandler) GetUserRewards(c *gin.Context) {
	recipient := c.Param("userId")
	if recipient == "" {
		ErrorResponse(c, http.StatusBadRequest, "接收者ID不能为空")
		return
	}

	rewards, err := h.rewardLogic.GetRecipientRewards(recipient)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", h.withClaimStatus(c, rewards))
}

// UpdateReward 更正奖励记录的token列表
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的奖励记录ID")
		return
	}

	var req UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	reward, err := h.rewardLogic.UpdateTokenIds(id, middleware.GetUserId(c), req.TokenIds)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "奖励记录已更新", reward)
}

// DeleteReward 删除奖励记录
func (h *RewardHandler) DeleteReward(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的奖励记录ID")
		return
	}

	if err := h.rewardLogic.Delete(id, middleware.GetUserId(c)); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "奖励记录删除成功", nil)
}

// withClaimStatus 批量附加认领状态
func (h *RewardHandler) withClaimStatus(c *gin.Context, rewards []model.NFTReward) []RewardResponse {
	statuses := h.claimLogic.ResolveAll(c.Request.Context(), rewards)
	responses := make([]RewardResponse, 0, len(rewards))
	for i, reward := range rewards {
		responses = append(responses, RewardResponse{
			Reward:      reward,
			ClaimStatus: statuses[i],
		})
	}
	return responses
}
