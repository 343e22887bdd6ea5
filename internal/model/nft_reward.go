package model

import (
	"time"
)

// NFTReward 奖励记录，引用外部铸造的token，认领状态不落库
type NFTReward struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;uniqueIndex:idx_reward_campaign_recipient,priority:1"`
	Recipient  string `json:"recipient" gorm:"not null;uniqueIndex:idx_reward_campaign_recipient,priority:2"`
	Issuer     string `json:"issuer" gorm:"not null"`

	// 外部铸造的token标识列表，非空
	TokenIds []string `json:"token_ids" gorm:"serializer:json;not null"`
}

// TableName 自定义表名
func (NFTReward) TableName() string {
	return "nft_reward"
}
