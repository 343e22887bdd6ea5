package logic

import (
	"errors"
	"fmt"

	"github.com/blues/cls/internal/errs"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/model"
	"gorm.io/gorm"
)

// RoleAdmin 平台管理员角色，可代替创建者发放奖励
const RoleAdmin = "admin"

// RewardLogic 奖励发放业务逻辑
type RewardLogic struct {
	db *gorm.DB
}

// NewRewardLogic 创建奖励发放业务逻辑
func NewRewardLogic(db *gorm.DB) *RewardLogic {
	return &RewardLogic{db: db}
}

// IssueReward 奖励发放命令
type IssueReward struct {
	CampaignId int64
	Issuer     string
	IssuerRole string
	Recipient  string
	TokenIds   []string
}

// Issue 创建奖励记录。只记录发放意图和外部token引用，铸造由外部协作方
// 在调用前完成，本服务不验证token是否真的已铸造。
// 同一(活动,接收者)最多一条奖励记录。
func (l *RewardLogic) Issue(in IssueReward) (*model.NFTReward, error) {
	if len(in.TokenIds) == 0 {
		return nil, errs.ValidationFailed("至少需要一个Token ID")
	}
	for _, id := range in.TokenIds {
		if id == "" {
			return nil, errs.ValidationFailed("Token ID不能为空")
		}
	}
	if in.Recipient == "" {
		return nil, errs.ValidationFailed("奖励接收者不能为空")
	}

	unlock := campaignLocks.Lock(in.CampaignId)
	defer unlock()

	var campaign model.Campaign
	if err := l.db.First(&campaign, in.CampaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("活动不存在")
		}
		return nil, fmt.Errorf("获取活动失败: %w", err)
	}

	if in.Issuer != campaign.Creator && in.IssuerRole != RoleAdmin {
		return nil, errs.Unauthorized("只有活动创建者或管理员可以发放奖励")
	}

	if campaign.Status != model.CampaignStatusFinished {
		return nil, errs.StateConflict("活动尚未结束，无法发放奖励")
	}

	var contributed int64
	if err := l.db.Model(&model.Contribution{}).
		Where("campaign_id = ? AND contributor = ?", in.CampaignId, in.Recipient).
		Count(&contributed).Error; err != nil {
		return nil, fmt.Errorf("获取贡献记录失败: %w", err)
	}
	if contributed == 0 {
		return nil, errs.ValidationFailed("奖励接收者不是该活动的贡献者")
	}

	var existing int64
	if err := l.db.Model(&model.NFTReward{}).
		Where("campaign_id = ? AND recipient = ?", in.CampaignId, in.Recipient).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("获取奖励记录失败: %w", err)
	}
	if existing > 0 {
		return nil, errs.StateConflict("该活动已向此贡献者发放过奖励")
	}

	reward := &model.NFTReward{
		CampaignId: in.CampaignId,
		Recipient:  in.Recipient,
		Issuer:     in.Issuer,
		TokenIds:   in.TokenIds,
	}
	if err := l.db.Create(reward).Error; err != nil {
		// 唯一索引兜底并发下的重复发放
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.StateConflict("该活动已向此贡献者发放过奖励")
		}
		return nil, fmt.Errorf("创建奖励记录失败: %w", err)
	}

	logger.Info("Reward %d issued for campaign %d to %s by %s", reward.Id, in.CampaignId, in.Recipient, in.Issuer)
	return reward, nil
}

// GetReward 获取奖励记录
func (l *RewardLogic) GetReward(id int64) (*model.NFTReward, error) {
	var reward model.NFTReward
	if err := l.db.First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("奖励记录不存在")
		}
		return nil, fmt.Errorf("获取奖励记录失败: %w", err)
	}
	return &reward, nil
}

// GetRewards 获取所有奖励记录
func (l *RewardLogic) GetRewards() ([]model.NFTReward, error) {
	var rewards []model.NFTReward
	if err := l.db.Order("id DESC").Find(&rewards).Error; err != nil {
		return nil, fmt.Errorf("获取奖励记录失败: %w", err)
	}
	return rewards, nil
}

// GetRecipientRewards 获取某接收者的所有奖励记录
func (l *RewardLogic) GetRecipientRewards(recipient string) ([]model.NFTReward, error) {
	var rewards []model.NFTReward
	if err := l.db.Where("recipient = ?", recipient).
		Order("id DESC").
		Find(&rewards).Error; err != nil {
		return nil, fmt.Errorf("获取奖励记录失败: %w", err)
	}
	return rewards, nil
}

// UpdateTokenIds 更正奖励记录的token列表，仅发放者可操作
func (l *RewardLogic) UpdateTokenIds(id int64, requester string, tokenIds []string) (*model.NFTReward, error) {
	if len(tokenIds) == 0 {
		return nil, errs.ValidationFailed("至少需要一个Token ID")
	}
	for _, tid := range tokenIds {
		if tid == "" {
			return nil, errs.ValidationFailed("Token ID不能为空")
		}
	}

	reward, err := l.GetReward(id)
	if err != nil {
		return nil, err
	}
	if reward.Issuer != requester {
		return nil, errs.Unauthorized("只有奖励发放者可以执行此操作")
	}

	reward.TokenIds = tokenIds
	if err := l.db.Save(reward).Error; err != nil {
		return nil, fmt.Errorf("更新奖励记录失败: %w", err)
	}
	return reward, nil
}

// Delete 删除奖励记录，仅发放者可操作
func (l *RewardLogic) Delete(id int64, requester string) error {
	reward, err := l.GetReward(id)
	if err != nil {
		return err
	}
	if reward.Issuer != requester {
		return errs.Unauthorized("只有奖励发放者可以执行此操作")
	}

	if err := l.db.Delete(&model.NFTReward{}, id).Error; err != nil {
		return fmt.Errorf("删除奖励记录失败: %w", err)
	}
	return nil
}
