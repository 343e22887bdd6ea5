package logic_test

import (
	"testing"

	"github.com/blues/cls/internal/errs"
	"github.com/blues/cls/internal/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// finishedCampaignWithContributor 准备一个已结束、bob贡献过的活动
func finishedCampaignWithContributor(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	campaign := newTestCampaign(t, db, "alice", "1")
	submitContribution(t, db, campaign.Id, "bob", "2")
	_, err := logic.NewCampaignLogic(db, testLedgerConfig()).ToggleStatus(campaign.Id, "alice")
	require.NoError(t, err)
	return campaign.Id
}

func TestIssueRewardLifecycle(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	submitContribution(t, db, campaign.Id, "bob", "2")
	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())
	rewardLogic := logic.NewRewardLogic(db)

	// 活动进行中不允许发放
	_, err := rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaign.Id,
		Issuer:     "alice",
		Recipient:  "bob",
		TokenIds:   []string{"1"},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindStateConflict, errs.KindOf(err))

	// 结束后立即可发放
	_, err = campaignLogic.ToggleStatus(campaign.Id, "alice")
	require.NoError(t, err)

	reward, err := rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaign.Id,
		Issuer:     "alice",
		Recipient:  "bob",
		TokenIds:   []string{"1", "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, reward.TokenIds)
	assert.Equal(t, "alice", reward.Issuer)
}

func TestIssueRewardAuthorization(t *testing.T) {
	db := newTestDB(t)
	campaignId := finishedCampaignWithContributor(t, db)
	rewardLogic := logic.NewRewardLogic(db)

	// 非创建者且非管理员
	_, err := rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaignId,
		Issuer:     "mallory",
		Recipient:  "bob",
		TokenIds:   []string{"1"},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	// 管理员角色可以代发
	_, err = rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaignId,
		Issuer:     "platform-ops",
		IssuerRole: logic.RoleAdmin,
		Recipient:  "bob",
		TokenIds:   []string{"1"},
	})
	require.NoError(t, err)
}

func TestIssueRewardValidation(t *testing.T) {
	db := newTestDB(t)
	campaignId := finishedCampaignWithContributor(t, db)
	rewardLogic := logic.NewRewardLogic(db)

	// 空token集合
	_, err := rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaignId,
		Issuer:     "alice",
		Recipient:  "bob",
		TokenIds:   nil,
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))

	// 接收者不是贡献者
	_, err = rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaignId,
		Issuer:     "alice",
		Recipient:  "stranger",
		TokenIds:   []string{"1"},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))

	// 活动不存在
	_, err = rewardLogic.Issue(logic.IssueReward{
		CampaignId: 9999,
		Issuer:     "alice",
		Recipient:  "bob",
		TokenIds:   []string{"1"},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestIssueRewardDuplicate(t *testing.T) {
	db := newTestDB(t)
	campaignId := finishedCampaignWithContributor(t, db)
	rewardLogic := logic.NewRewardLogic(db)

	_, err := rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaignId,
		Issuer:     "alice",
		Recipient:  "bob",
		TokenIds:   []string{"1"},
	})
	require.NoError(t, err)

	// 同一(活动,接收者)只允许一条奖励记录
	_, err = rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaignId,
		Issuer:     "alice",
		Recipient:  "bob",
		TokenIds:   []string{"2"},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindStateConflict, errs.KindOf(err))
}

func TestUpdateRewardTokenIds(t *testing.T) {
	db := newTestDB(t)
	campaignId := finishedCampaignWithContributor(t, db)
	rewardLogic := logic.NewRewardLogic(db)

	reward, err := rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaignId,
		Issuer:     "alice",
		Recipient:  "bob",
		TokenIds:   []string{"1"},
	})
	require.NoError(t, err)

	_, err = rewardLogic.UpdateTokenIds(reward.Id, "mallory", []string{"9"})
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	_, err = rewardLogic.UpdateTokenIds(reward.Id, "alice", nil)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))

	updated, err := rewardLogic.UpdateTokenIds(reward.Id, "alice", []string{"9", "10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "10"}, updated.TokenIds)
}

func TestDeleteReward(t *testing.T) {
	db := newTestDB(t)
	campaignId := finishedCampaignWithContributor(t, db)
	rewardLogic := logic.NewRewardLogic(db)

	reward, err := rewardLogic.Issue(logic.IssueReward{
		CampaignId: campaignId,
		Issuer:     "alice",
		Recipient:  "bob",
		TokenIds:   []string{"1"},
	})
	require.NoError(t, err)

	require.Error(t, rewardLogic.Delete(reward.Id, "mallory"))
	require.NoError(t, rewardLogic.Delete(reward.Id, "alice"))

	_, err = rewardLogic.GetReward(reward.Id)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
