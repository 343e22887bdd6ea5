package scheduler

import (
	"time"

	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/metrics"
	"github.com/blues/cls/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// TallyAuditJob 计票审计任务：逐活动比对选项计票总和与贡献记录条数。
// 两者在同一事务内维护，理应永远一致；任务只读、只上报，从不修复。
type TallyAuditJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewTallyAuditJob 创建计票审计任务
func NewTallyAuditJob(db *gorm.DB, cfg *config.Config) *TallyAuditJob {
	return &TallyAuditJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *TallyAuditJob) GetName() string {
	return "tally_auditor"
}

// GetSchedule 获取调度配置
func (j *TallyAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *TallyAuditJob) Execute() {
	logger.Debug("Starting tally audit task")

	var campaigns []model.Campaign
	if err := j.db.Select("id").Find(&campaigns).Error; err != nil {
		logger.Error("Failed to fetch campaigns for tally audit: %v", err)
		return
	}

	mismatched := 0
	for _, campaign := range campaigns {
		var tallySum int64
		if err := j.db.Model(&model.CampaignOption{}).
			Where("campaign_id = ?", campaign.Id).
			Select("COALESCE(SUM(count), 0)").
			Scan(&tallySum).Error; err != nil {
			logger.Error("Failed to sum option tallies for campaign %d: %v", campaign.Id, err)
			continue
		}

		var contributionCount int64
		if err := j.db.Model(&model.Contribution{}).
			Where("campaign_id = ?", campaign.Id).
			Count(&contributionCount).Error; err != nil {
			logger.Error("Failed to count contributions for campaign %d: %v", campaign.Id, err)
			continue
		}

		// 选项被整体替换后计票归零而贡献保留，出现差值是预期内的；
		// 只有计票超过账本条数才一定是错账
		if tallySum > contributionCount {
			logger.Error("Tally mismatch for campaign %d: tallies sum to %d but ledger has %d contributions",
				campaign.Id, tallySum, contributionCount)
			mismatched++
		}
	}

	metrics.TallyMismatch.Set(float64(mismatched))
	logger.Debug("Tally audit completed. Checked %d campaigns, %d mismatched", len(campaigns), mismatched)
}
