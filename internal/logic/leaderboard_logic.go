package logic

import (
	"errors"
	"fmt"
	"sort"

	"github.com/blues/cls/internal/errs"
	"github.com/blues/cls/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaderboardEntry 排行榜条目，由贡献序列派生，不落库
type LeaderboardEntry struct {
	Contributor       string          `json:"contributor"`
	TotalAmountPaid   decimal.Decimal `json:"total_amount_paid"`
	ContributionCount int             `json:"contribution_count"`
	RewardAddress     string          `json:"reward_address"`

	// 首次贡献的记录ID，用于同额并列时保持提交顺序
	firstContributionId int64
}

// LeaderboardLogic 排行榜业务逻辑
type LeaderboardLogic struct {
	db *gorm.DB
}

// NewLeaderboardLogic 创建排行榜业务逻辑
func NewLeaderboardLogic(db *gorm.DB) *LeaderboardLogic {
	return &LeaderboardLogic{db: db}
}

// Leaderboard 从贡献序列重新计算排行榜：按总出资额降序，
// 同额时先贡献者在前。结果确定且稳定，奖励发放以它为选择依据。
func (l *LeaderboardLogic) Leaderboard(campaignId int64) ([]LeaderboardEntry, error) {
	var campaign model.Campaign
	if err := l.db.Select("id").First(&campaign, campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("活动不存在")
		}
		return nil, fmt.Errorf("获取活动失败: %w", err)
	}

	var contributions []model.Contribution
	if err := l.db.Where("campaign_id = ?", campaignId).
		Order("id ASC").
		Find(&contributions).Error; err != nil {
		return nil, fmt.Errorf("获取贡献记录失败: %w", err)
	}

	index := make(map[string]int)
	entries := make([]LeaderboardEntry, 0)
	for _, c := range contributions {
		i, ok := index[c.Contributor]
		if !ok {
			index[c.Contributor] = len(entries)
			entries = append(entries, LeaderboardEntry{
				Contributor:         c.Contributor,
				TotalAmountPaid:     decimal.Zero,
				firstContributionId: c.Id,
			})
			i = len(entries) - 1
		}
		entries[i].TotalAmountPaid = entries[i].TotalAmountPaid.Add(c.AmountPaid)
		entries[i].ContributionCount++
		// 最近一条贡献的奖励地址生效
		if c.RewardAddress != "" {
			entries[i].RewardAddress = c.RewardAddress
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		cmp := entries[a].TotalAmountPaid.Cmp(entries[b].TotalAmountPaid)
		if cmp != 0 {
			return cmp > 0
		}
		return entries[a].firstContributionId < entries[b].firstContributionId
	})

	return entries, nil
}
