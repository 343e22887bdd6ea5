package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution 贡献记录，一次付费投票一条，只追加不修改（审计凭证）
type Contribution struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId  int64           `json:"campaign_id" gorm:"not null;index:idx_contribution_campaign_contributor,priority:1"`
	Contributor string          `json:"contributor" gorm:"not null;index:idx_contribution_campaign_contributor,priority:2"`
	OptionIndex int             `json:"option_index" gorm:"not null"`
	AmountPaid  decimal.Decimal `json:"amount_paid" gorm:"type:numeric(20,8);not null"`

	// 外部支付凭证，仅存储不做链上校验
	ProofToken string `json:"proof_token" gorm:"not null"`

	// 贡献者提供的奖励接收地址
	RewardAddress string `json:"reward_address"`
}

// TableName 自定义表名
func (Contribution) TableName() string {
	return "contribution"
}
