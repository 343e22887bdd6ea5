package logic_test

import (
	"testing"

	"github.com/blues/cls/internal/errs"
	"github.com/blues/cls/internal/logic"
	"github.com/blues/cls/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCampaign(t *testing.T) {
	db := newTestDB(t)
	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())

	campaign, err := campaignLogic.Create(logic.CreateCampaign{
		Title:   "My campaign",
		Price:   dec(t, "0.5"),
		Options: []string{"Red", "Blue", "Green"},
		Creator: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusActive, campaign.Status)
	require.Len(t, campaign.Options, 3)
	for i, option := range campaign.Options {
		assert.Equal(t, i, option.Position)
		assert.Equal(t, int64(0), option.Count)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	db := newTestDB(t)
	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())

	// 少于两个选项
	_, err := campaignLogic.Create(logic.CreateCampaign{
		Title:   "Bad",
		Price:   dec(t, "1"),
		Options: []string{"Only"},
		Creator: "alice",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))

	// 定价低于最低限制
	_, err = campaignLogic.Create(logic.CreateCampaign{
		Title:   "Bad",
		Price:   dec(t, "0.0001"),
		Options: []string{"Red", "Blue"},
		Creator: "alice",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))

	// 恰好等于最低限制
	_, err = campaignLogic.Create(logic.CreateCampaign{
		Title:   "Good",
		Price:   dec(t, "0.001"),
		Options: []string{"Red", "Blue"},
		Creator: "alice",
	})
	require.NoError(t, err)
}

func TestUpdateCampaignAuthorization(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())

	title := "Renamed"
	_, err := campaignLogic.Update(campaign.Id, "mallory", logic.UpdateCampaign{Title: &title})
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	updated, err := campaignLogic.Update(campaign.Id, "alice", logic.UpdateCampaign{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestReplaceOptionsResetsTallies(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())

	submitContribution(t, db, campaign.Id, "bob", "1")
	submitContribution(t, db, campaign.Id, "carol", "1")

	options, err := campaignLogic.ReplaceOptions(campaign.Id, "alice", []string{"Cat", "Dog", "Bird"})
	require.NoError(t, err)
	require.Len(t, options, 3)
	for _, option := range options {
		assert.Equal(t, int64(0), option.Count)
	}

	// 旧贡献记录原样保留作审计凭证
	var contributions []model.Contribution
	require.NoError(t, db.Where("campaign_id = ?", campaign.Id).Find(&contributions).Error)
	require.Len(t, contributions, 2)
	for _, c := range contributions {
		assert.Equal(t, 0, c.OptionIndex)
	}
}

func TestReplaceOptionsValidation(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())

	_, err := campaignLogic.ReplaceOptions(campaign.Id, "alice", []string{"Single"})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))

	_, err = campaignLogic.ReplaceOptions(campaign.Id, "mallory", []string{"Cat", "Dog"})
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
}

func TestToggleStatus(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())

	_, err := campaignLogic.ToggleStatus(campaign.Id, "mallory")
	require.Error(t, err)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	toggled, err := campaignLogic.ToggleStatus(campaign.Id, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusFinished, toggled.Status)

	toggled, err = campaignLogic.ToggleStatus(campaign.Id, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusActive, toggled.Status)
}

func TestDeleteCampaignKeepsContributions(t *testing.T) {
	db := newTestDB(t)
	campaign := newTestCampaign(t, db, "alice", "1")
	campaignLogic := logic.NewCampaignLogic(db, testLedgerConfig())

	submitContribution(t, db, campaign.Id, "bob", "1")

	require.NoError(t, campaignLogic.Delete(campaign.Id, "alice"))

	_, err := campaignLogic.GetCampaign(campaign.Id)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	var contributionCount int64
	require.NoError(t, db.Model(&model.Contribution{}).
		Where("campaign_id = ?", campaign.Id).
		Count(&contributionCount).Error)
	assert.Equal(t, int64(1), contributionCount)
}
