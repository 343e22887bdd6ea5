package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign 众筹活动模型
type Campaign struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`

	// 最低出资金额
	Price decimal.Decimal `json:"price" gorm:"type:numeric(20,8);not null"`

	// 状态
	Status CampaignStatus `json:"status" gorm:"default:'active'"`

	// 创建者信息
	Creator string `json:"creator" gorm:"not null;index"`

	// 关联
	Options       []CampaignOption `json:"options,omitempty" gorm:"foreignKey:CampaignId"`
	Contributions []Contribution   `json:"contributions,omitempty" gorm:"foreignKey:CampaignId"`
}

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"   // 进行中，接受贡献
	CampaignStatusFinished CampaignStatus = "finished" // 已结束，可发放奖励
)

// TableName 自定义表名
func (Campaign) TableName() string {
	return "campaign"
}

// CampaignOption 活动投票选项，count 是随贡献写入同步维护的计票
type CampaignOption struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;uniqueIndex:idx_option_campaign_position,priority:1"`
	Position   int    `json:"position" gorm:"not null;uniqueIndex:idx_option_campaign_position,priority:2"`
	Label      string `json:"label" gorm:"not null"`
	Count      int64  `json:"count" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (CampaignOption) TableName() string {
	return "campaign_option"
}
