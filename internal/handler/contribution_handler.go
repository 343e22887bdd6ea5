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

// ContributionHandler 贡献记录处理器
type ContributionHandler struct {
	contributionLogic *logic.ContributionLogic
}

// NewContributionHandler 创建贡献记录处理器
func NewContributionHandler(db *gorm.DB, cfg config.LedgerConfig) *ContributionHandler {
	return &ContributionHandler{
		contributionLogic: logic.NewContributionLogic(db, cfg),
	}
}

// Vote 提交一次付费投票
func (h *ContributionHandler) Vote(c *gin.Context) {
	campaignId, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	record, err := h.contributionLogic.Submit(logic.SubmitContribution{
		CampaignId:    campaignId,
		Contributor:   middleware.GetUserId(c),
		OptionIndex:   *req.OptionIndex,
		AmountPaid:    req.AmountPaid,
		ProofToken:    req.ProofToken,
		RewardAddress: req.RewardAddress,
	})
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "投票已记录", record)
}

// GetCampaignContributions 获取活动贡献记录
func (h *ContributionHandler) GetCampaignContributions(c *gin.Context) {
	campaignId, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	page, pageSize := parsePagination(c)

	records, total, err := h.contributionLogic.GetCampaignContributions(campaignId, page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"pagination": Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetContributorContributions 获取贡献者的贡献记录
func (h *ContributionHandler) GetContributorContributions(c *gin.Context) {
	contributor := c.Param("userId")
	if contributor == "" {
		ErrorResponse(c, http.StatusBadRequest, "贡献者ID不能为空")
		return
	}

	page, pageSize := parsePagination(c)

	records, total, err := h.contributionLogic.GetContributorContributions(contributor, page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"pagination": Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetContributionStats 获取活动贡献统计信息
func (h *ContributionHandler) GetContributionStats(c *gin.Context) {
	campaignId, err := parseId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	stats, err := h.contributionLogic.GetContributionStats(campaignId)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", stats)
}

// parsePagination 解析分页参数
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
