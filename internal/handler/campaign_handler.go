package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/logic"
	"github.com/blues/cls/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CampaignHandler 活动处理器
type CampaignHandler struct {
	campaignLogic    *logic.CampaignLogic
	leaderboardLogic *logic.LeaderboardLogic
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(db *gorm.DB, cfg config.LedgerConfig) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic:    logic.NewCampaignLogic(db, cfg),
		leaderboardLogic: logic.NewLeaderboardLogic(db),
	}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	campaign, err := h.campaignLogic.Create(logic.CreateCampaign{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Price:       req.Price,
		Options:     req.Options,
		Creator:     middleware.GetUserId(c),
	})
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", campaign)
}

// GetCampaigns 获取活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignLogic.GetCampaigns()
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", campaigns)
}

// GetCampaign 获取活动详情（含排行榜）
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	leaderboard, err := h.leaderboardLogic.Leaderboard(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", CampaignDetailResponse{
		Campaign:    campaign,
		Leaderboard: leaderboard,
	})
}

// GetLeaderboard 获取活动排行榜
func (h *CampaignHandler) GetLeaderboard(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	leaderboard, err := h.leaderboardLogic.Leaderboard(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", leaderboard)
}

// UpdateCampaign 更新活动元数据
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	campaign, err := h.campaignLogic.Update(id, middleware.GetUserId(c), logic.UpdateCampaign{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Price:       req.Price,
	})
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动更新成功", campaign)
}

// ReplaceOptions 整体替换选项集合。计票全部归零，历史贡献保留，
// 调用方需自行确认这一破坏性语义。
func (h *CampaignHandler) ReplaceOptions(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req ReplaceOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	options, err := h.campaignLogic.ReplaceOptions(id, middleware.GetUserId(c), req.Options)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "选项已替换，计票已归零", options)
}

// ToggleStatus 切换活动状态
func (h *CampaignHandler) ToggleStatus(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	campaign, err := h.campaignLogic.ToggleStatus(id, middleware.GetUserId(c))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动状态已切换", campaign)
}

// DeleteCampaign 删除活动
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if err := h.campaignLogic.Delete(id, middleware.GetUserId(c)); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动删除成功", nil)
}

// parseId 解析路径中的记录ID
func parseId(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
