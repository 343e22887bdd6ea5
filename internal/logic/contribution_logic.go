package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/errs"
	"github.com/blues/cls/internal/metrics"
	"github.com/blues/cls/internal/model"
	"gorm.io/gorm"

	"github.com/shopspring/decimal"
)

// ContributionLogic 贡献账本业务逻辑
type ContributionLogic struct {
	db         *gorm.DB
	cap        int
	maxRetries int
}

// NewContributionLogic 创建贡献账本业务逻辑
func NewContributionLogic(db *gorm.DB, cfg config.LedgerConfig) *ContributionLogic {
	capLimit := cfg.ContributionCap
	if capLimit <= 0 {
		capLimit = 5
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &ContributionLogic{db: db, cap: capLimit, maxRetries: maxRetries}
}

// SubmitContribution 贡献提交命令
type SubmitContribution struct {
	CampaignId    int64
	Contributor   string
	OptionIndex   int
	AmountPaid    decimal.Decimal
	ProofToken    string
	RewardAddress string
}

// Submit 校验并追加一条贡献记录，同时递增对应选项计票。
// 上限检查、追加和计票在活动锁内完成：同一(活动,贡献者)对的并发提交
// 不可能都读到旧计数后同时成功，上限永远不会被突破。
func (l *ContributionLogic) Submit(in SubmitContribution) (*model.Contribution, error) {
	start := time.Now()
	record, err := l.submit(in)
	if err != nil {
		metrics.RecordSubmitDuration("failure", time.Since(start).Seconds())
		if kind := errs.KindOf(err); kind != "" {
			metrics.RecordSubmitRejection(string(kind))
		}
		return nil, err
	}
	metrics.RecordSubmitDuration("success", time.Since(start).Seconds())
	return record, nil
}

func (l *ContributionLogic) submit(in SubmitContribution) (*model.Contribution, error) {
	if in.Contributor == "" {
		return nil, errs.ValidationFailed("贡献者不能为空")
	}
	if in.ProofToken == "" {
		return nil, errs.ValidationFailed("支付凭证不能为空")
	}
	if in.AmountPaid.Sign() <= 0 {
		return nil, errs.ValidationFailed("出资金额必须大于0")
	}

	unlock := campaignLocks.Lock(in.CampaignId)
	defer unlock()

	var lastErr error
	for attempt := 0; attempt < l.maxRetries; attempt++ {
		record, err := l.trySubmit(in)
		if err == nil {
			return record, nil
		}
		// 业务规则拒绝立即返回，只有驱动层写冲突才重试
		if !isRetryableError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, errs.StateConflict("写入冲突，请稍后重试: %v", lastErr)
}

// trySubmit 单次提交尝试：规则校验后在一个事务内完成追加与计票
func (l *ContributionLogic) trySubmit(in SubmitContribution) (*model.Contribution, error) {
	var campaign model.Campaign
	if err := l.db.First(&campaign, in.CampaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("活动不存在")
		}
		return nil, fmt.Errorf("获取活动失败: %w", err)
	}

	if campaign.Status != model.CampaignStatusActive {
		return nil, errs.StateConflict("活动已结束，无法接受贡献")
	}

	if in.AmountPaid.LessThan(campaign.Price) {
		return nil, errs.ValidationFailed("出资金额低于活动定价 %s", campaign.Price.String())
	}

	var optionCount int64
	if err := l.db.Model(&model.CampaignOption{}).
		Where("campaign_id = ?", in.CampaignId).
		Count(&optionCount).Error; err != nil {
		return nil, fmt.Errorf("获取选项数量失败: %w", err)
	}
	if in.OptionIndex < 0 || int64(in.OptionIndex) >= optionCount {
		return nil, errs.ValidationFailed("无效的选项序号")
	}

	var contributed int64
	if err := l.db.Model(&model.Contribution{}).
		Where("campaign_id = ? AND contributor = ?", in.CampaignId, in.Contributor).
		Count(&contributed).Error; err != nil {
		return nil, fmt.Errorf("获取贡献次数失败: %w", err)
	}
	if contributed >= int64(l.cap) {
		return nil, errs.StateConflict("单个活动的贡献次数上限为 %d 次", l.cap)
	}

	record := &model.Contribution{
		CampaignId:    in.CampaignId,
		Contributor:   in.Contributor,
		OptionIndex:   in.OptionIndex,
		AmountPaid:    in.AmountPaid,
		ProofToken:    in.ProofToken,
		RewardAddress: in.RewardAddress,
	}

	// 追加贡献和递增计票必须同时生效或同时不生效
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		result := tx.Model(&model.CampaignOption{}).
			Where("campaign_id = ? AND position = ?", in.CampaignId, in.OptionIndex).
			Update("count", gorm.Expr("count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return fmt.Errorf("选项计票更新失败: 期望1行，实际%d行", result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// isRetryableError 判断是否为可重试的驱动层写冲突
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errs.KindOf(err) != "" {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "busy") ||
		strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "serialization")
}

// GetCampaignContributions 获取活动贡献记录（分页，最新在前）
func (l *ContributionLogic) GetCampaignContributions(campaignId int64, page, pageSize int) ([]model.Contribution, int64, error) {
	var contributions []model.Contribution
	var total int64

	if err := l.db.Model(&model.Contribution{}).Where("campaign_id = ?", campaignId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := l.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("id DESC").
		Find(&contributions).Error; err != nil {
		return nil, 0, err
	}

	return contributions, total, nil
}

// GetContributorContributions 获取贡献者的所有贡献记录（分页，最新在前）
func (l *ContributionLogic) GetContributorContributions(contributor string, page, pageSize int) ([]model.Contribution, int64, error) {
	var contributions []model.Contribution
	var total int64

	if err := l.db.Model(&model.Contribution{}).Where("contributor = ?", contributor).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := l.db.Where("contributor = ?", contributor).
		Offset(offset).
		Limit(pageSize).
		Order("id DESC").
		Find(&contributions).Error; err != nil {
		return nil, 0, err
	}

	return contributions, total, nil
}

// ContributionStats 活动贡献统计
type ContributionStats struct {
	TotalContributions int64           `json:"total_contributions"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	UniqueContributors int64           `json:"unique_contributors"`
}

// GetContributionStats 获取活动贡献统计信息，从原始账本重新计算
func (l *ContributionLogic) GetContributionStats(campaignId int64) (*ContributionStats, error) {
	var contributions []model.Contribution
	if err := l.db.Where("campaign_id = ?", campaignId).Find(&contributions).Error; err != nil {
		return nil, fmt.Errorf("获取贡献记录失败: %w", err)
	}

	stats := &ContributionStats{TotalAmount: decimal.Zero}
	seen := make(map[string]struct{})
	for _, c := range contributions {
		stats.TotalContributions++
		stats.TotalAmount = stats.TotalAmount.Add(c.AmountPaid)
		if _, ok := seen[c.Contributor]; !ok {
			seen[c.Contributor] = struct{}{}
			stats.UniqueContributors++
		}
	}

	return stats, nil
}
