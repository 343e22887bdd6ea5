package handler

import (
	"github.com/blues/cls/internal/logic"
	"github.com/blues/cls/internal/model"
	"github.com/shopspring/decimal"
)

// 请求模型：每个操作一个显式结构体，未知字段不生效

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Options     []string        `json:"options" binding:"required,min=2"`
}

// UpdateCampaignRequest 更新活动元数据请求，缺省字段不修改
type UpdateCampaignRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
}

// ReplaceOptionsRequest 替换选项请求（破坏性操作，计票归零）
type ReplaceOptionsRequest struct {
	Options []string `json:"options" binding:"required,min=2"`
}

// VoteRequest 贡献提交请求
type VoteRequest struct {
	OptionIndex   *int            `json:"option_index" binding:"required"`
	AmountPaid    decimal.Decimal `json:"amount_paid" binding:"required"`
	ProofToken    string          `json:"proof_token" binding:"required"`
	RewardAddress string          `json:"reward_address"`
}

// IssueRewardRequest 奖励发放请求
type IssueRewardRequest struct {
	CampaignId int64    `json:"campaign_id" binding:"required"`
	Recipient  string   `json:"recipient" binding:"required"`
	TokenIds   []string `json:"token_ids" binding:"required,min=1"`
}

// UpdateRewardRequest 更正奖励token列表请求
type UpdateRewardRequest struct {
	TokenIds []string `json:"token_ids" binding:"required,min=1"`
}

// 响应模型

// CampaignDetailResponse 活动详情，含派生的排行榜
type CampaignDetailResponse struct {
	Campaign    *model.Campaign          `json:"campaign"`
	Leaderboard []logic.LeaderboardEntry `json:"leaderboard"`
}

// RewardResponse 奖励记录及其读取时核对出的认领状态
type RewardResponse struct {
	Reward      model.NFTReward   `json:"reward"`
	ClaimStatus logic.ClaimStatus `json:"claim_status"`
}
