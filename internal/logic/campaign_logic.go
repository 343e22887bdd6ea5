package logic

import (
	"errors"
	"fmt"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/errs"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CampaignLogic 活动业务逻辑
type CampaignLogic struct {
	db         *gorm.DB
	priceFloor decimal.Decimal
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(db *gorm.DB, cfg config.LedgerConfig) *CampaignLogic {
	return &CampaignLogic{
		db:         db,
		priceFloor: parsePriceFloor(cfg.PriceFloor),
	}
}

// parsePriceFloor 解析最低定价配置
func parsePriceFloor(raw string) decimal.Decimal {
	floor, err := decimal.NewFromString(raw)
	if err != nil || floor.Sign() <= 0 {
		logger.Warn("Invalid price floor %q, falling back to 0.001", raw)
		return decimal.RequireFromString("0.001")
	}
	return floor
}

// CreateCampaign 创建活动命令
type CreateCampaign struct {
	Title       string
	Description string
	ImageURL    string
	Category    string
	Price       decimal.Decimal
	Options     []string
	Creator     string
}

// Create 创建活动，选项计票从0开始，初始状态为进行中
func (l *CampaignLogic) Create(in CreateCampaign) (*model.Campaign, error) {
	if in.Title == "" {
		return nil, errs.ValidationFailed("活动标题不能为空")
	}
	if in.Creator == "" {
		return nil, errs.ValidationFailed("创建者不能为空")
	}
	if len(in.Options) < 2 {
		return nil, errs.ValidationFailed("至少需要两个投票选项")
	}
	for _, label := range in.Options {
		if label == "" {
			return nil, errs.ValidationFailed("选项标签不能为空")
		}
	}
	if in.Price.LessThan(l.priceFloor) {
		return nil, errs.ValidationFailed("定价不能低于最低限制 %s", l.priceFloor.String())
	}

	campaign := &model.Campaign{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Price:       in.Price,
		Status:      model.CampaignStatusActive,
		Creator:     in.Creator,
	}
	for i, label := range in.Options {
		campaign.Options = append(campaign.Options, model.CampaignOption{
			Position: i,
			Label:    label,
		})
	}

	if err := l.db.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("创建活动失败: %w", err)
	}

	return campaign, nil
}

// GetCampaigns 获取活动列表
func (l *CampaignLogic) GetCampaigns() ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := l.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("获取活动列表失败: %w", err)
	}
	return campaigns, nil
}

// GetCampaign 获取活动详情
func (l *CampaignLogic) GetCampaign(id int64) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := l.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("活动不存在")
		}
		return nil, fmt.Errorf("获取活动详情失败: %w", err)
	}
	return &campaign, nil
}

// UpdateCampaign 活动元数据更新命令，nil 字段不修改
type UpdateCampaign struct {
	Title       *string
	Description *string
	ImageURL    *string
	Category    *string
	Price       *decimal.Decimal
}

// Update 更新活动元数据，仅创建者可操作
func (l *CampaignLogic) Update(id int64, requester string, in UpdateCampaign) (*model.Campaign, error) {
	unlock := campaignLocks.Lock(id)
	defer unlock()

	campaign, err := l.loadOwned(id, requester)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, errs.ValidationFailed("活动标题不能为空")
		}
		campaign.Title = *in.Title
	}
	if in.Description != nil {
		campaign.Description = *in.Description
	}
	if in.ImageURL != nil {
		campaign.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		campaign.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.LessThan(l.priceFloor) {
			return nil, errs.ValidationFailed("定价不能低于最低限制 %s", l.priceFloor.String())
		}
		campaign.Price = *in.Price
	}

	if err := l.db.Save(campaign).Error; err != nil {
		return nil, fmt.Errorf("更新活动失败: %w", err)
	}
	return campaign, nil
}

// ReplaceOptions 整体替换选项集合，计票全部归零；历史贡献记录保留不动。
// 这是破坏性操作，旧贡献的选项序号仍指向被替换前的选项。
func (l *CampaignLogic) ReplaceOptions(id int64, requester string, labels []string) ([]model.CampaignOption, error) {
	if len(labels) < 2 {
		return nil, errs.ValidationFailed("至少需要两个投票选项")
	}
	for _, label := range labels {
		if label == "" {
			return nil, errs.ValidationFailed("选项标签不能为空")
		}
	}

	unlock := campaignLocks.Lock(id)
	defer unlock()

	if _, err := l.loadOwned(id, requester); err != nil {
		return nil, err
	}

	options := make([]model.CampaignOption, 0, len(labels))
	for i, label := range labels {
		options = append(options, model.CampaignOption{
			CampaignId: id,
			Position:   i,
			Label:      label,
		})
	}

	// 删除旧选项和写入新选项必须在同一事务内，避免出现没有选项的活动
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&model.CampaignOption{}).Error; err != nil {
			return err
		}
		return tx.Create(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("替换选项失败: %w", err)
	}

	return options, nil
}

// ToggleStatus 切换活动状态，仅创建者可操作。重新开启不清除任何历史数据。
func (l *CampaignLogic) ToggleStatus(id int64, requester string) (*model.Campaign, error) {
	unlock := campaignLocks.Lock(id)
	defer unlock()

	campaign, err := l.loadOwned(id, requester)
	if err != nil {
		return nil, err
	}

	if campaign.Status == model.CampaignStatusActive {
		campaign.Status = model.CampaignStatusFinished
	} else {
		campaign.Status = model.CampaignStatusActive
	}

	if err := l.db.Model(campaign).Update("status", campaign.Status).Error; err != nil {
		return nil, fmt.Errorf("切换活动状态失败: %w", err)
	}

	logger.Info("Campaign %d status toggled to %s by %s", id, campaign.Status, requester)
	return campaign, nil
}

// Delete 删除活动及其选项，仅创建者可操作；贡献记录保留作审计凭证
func (l *CampaignLogic) Delete(id int64, requester string) error {
	unlock := campaignLocks.Lock(id)
	defer unlock()

	if _, err := l.loadOwned(id, requester); err != nil {
		return err
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&model.CampaignOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Campaign{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("删除活动失败: %w", err)
	}
	return nil
}

// loadOwned 加载活动并校验请求者是创建者
func (l *CampaignLogic) loadOwned(id int64, requester string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := l.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("活动不存在")
		}
		return nil, fmt.Errorf("获取活动失败: %w", err)
	}
	if campaign.Creator != requester {
		return nil, errs.Unauthorized("只有活动创建者可以执行此操作")
	}
	return &campaign, nil
}
