package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/internal/db"
)

func setupTrainingServiceTest(t *testing.T) TrainingService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	trainingService := NewTrainingService(repository.NewTrainingRepository(testDB))

	modules := []model.TrainingModule{
		{Title: "Getting Started", MinPlan: model.PlanFree, Position: 1, Published: true},
		{Title: "Scaling Your Zone", MinPlan: model.PlanBasic, Position: 2, Published: true},
		{Title: "Premium Playbook", MinPlan: model.PlanPremium, Position: 3, Published: true},
		{Title: "Elite Operations", MinPlan: model.PlanElite, Position: 4, Published: true},
		{Title: "Draft Module", MinPlan: model.PlanFree, Position: 5, Published: false},
	}
	for i := range modules {
		require.NoError(t, trainingService.Create(&modules[i]))
	}

	return trainingService
}

func TestTrainingService_ListForPlan(t *testing.T) {
	trainingService := setupTrainingServiceTest(t)

	tests := []struct {
		plan      model.FranchisePlan
		wantCount int
		wantLast  string
	}{
		{model.PlanFree, 1, "Getting Started"},
		{model.PlanBasic, 2, "Scaling Your Zone"},
		{model.PlanPremium, 3, "Premium Playbook"},
		{model.PlanElite, 4, "Elite Operations"},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			modules, err := trainingService.ListForPlan(tt.plan)
			require.NoError(t, err)
			require.Len(t, modules, tt.wantCount)
			assert.Equal(t, "Getting Started", modules[0].Title)
			assert.Equal(t, tt.wantLast, modules[len(modules)-1].Title)
		})
	}
}

func TestTrainingService_ListForPlan_ExcludesDrafts(t *testing.T) {
	trainingService := setupTrainingServiceTest(t)

	modules, err := trainingService.ListForPlan(model.PlanElite)
	require.NoError(t, err)
	for _, module := range modules {
		assert.True(t, module.Published)
	}

	all, err := trainingService.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestTrainingService_Update(t *testing.T) {
	trainingService := setupTrainingServiceTest(t)

	all, err := trainingService.ListAll()
	require.NoError(t, err)
	target := all[0]

	updated, err := trainingService.Update(target.ID, &model.TrainingModule{
		Title:     "Getting Started v2",
		MinPlan:   model.PlanBasic,
		Position:  1,
		Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Getting Started v2", updated.Title)
	assert.Equal(t, model.PlanBasic, updated.MinPlan)

	_, err = trainingService.Update(9999, &model.TrainingModule{Title: "Nope"})
	assert.ErrorIs(t, err, ErrTrainingModuleNotFound)
}

func TestTrainingService_Delete(t *testing.T) {
	trainingService := setupTrainingServiceTest(t)

	all, err := trainingService.ListAll()
	require.NoError(t, err)

	require.NoError(t, trainingService.Delete(all[0].ID))

	remaining, err := trainingService.ListAll()
	require.NoError(t, err)
	assert.Len(t, remaining, len(all)-1)

	assert.ErrorIs(t, trainingService.Delete(9999), ErrTrainingModuleNotFound)
}
