package swipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func fullMatchWorker() *WorkerView {
	return &WorkerView{
		UserID:            1,
		Skills:            []string{"cleaning", "cooking", "driving"},
		PreferredJobTypes: []string{"housekeeping"},
		ExpectedSalaryMin: intPtr(15000),
		ExpectedSalaryMax: intPtr(25000),
		City:              strPtr("Cebu"),
		Region:            strPtr("Central Visayas"),
	}
}

func fullMatchJob() *JobView {
	return &JobView{
		ID:             10,
		EmployerID:     2,
		Title:          "Live-in Housekeeper",
		JobType:        "housekeeping",
		SalaryMin:      intPtr(18000),
		SalaryMax:      intPtr(22000),
		City:           strPtr("Cebu"),
		Region:         strPtr("Central Visayas"),
		RequiredSkills: []string{"Cleaning", "Cooking"},
	}
}

func TestScoreJobPerfectMatch(t *testing.T) {
	score := ScoreJob(fullMatchWorker(), fullMatchJob())

	assert.Equal(t, 100, score.Total)
	assert.Equal(t, 25, score.Breakdown.JobType)
	assert.Equal(t, 25, score.Breakdown.Location)
	assert.Equal(t, 20, score.Breakdown.Salary)
	assert.Equal(t, 30, score.Breakdown.Skills)

	require.Len(t, score.Reasons, 4)
	assert.Equal(t, "Looking for housekeeping work", score.Reasons[0])
	assert.Equal(t, "Located in your area", score.Reasons[1])
	assert.Equal(t, "Salary fits your expectations", score.Reasons[2])
	assert.Equal(t, "Skills matched: Cleaning, Cooking", score.Reasons[3])
}

func TestScoreJobDeterministic(t *testing.T) {
	worker := fullMatchWorker()
	job := fullMatchJob()

	first := ScoreJob(worker, job)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreJob(worker, job))
	}
}

func TestScoreJobEmptyProfileScoresZero(t *testing.T) {
	score := ScoreJob(&WorkerView{UserID: 1}, fullMatchJob())

	assert.Equal(t, 0, score.Total)
	assert.Empty(t, score.Reasons)
}

func TestScoreJobTypeCaseInsensitive(t *testing.T) {
	worker := fullMatchWorker()
	worker.PreferredJobTypes = []string{"HOUSEKEEPING"}

	score := ScoreJob(worker, fullMatchJob())
	assert.Equal(t, 25, score.Breakdown.JobType)
}

func TestScoreLocationRegionOnly(t *testing.T) {
	worker := fullMatchWorker()
	worker.City = strPtr("Mandaue")

	score := ScoreJob(worker, fullMatchJob())
	// 60 * 25 / 100
	assert.Equal(t, 15, score.Breakdown.Location)
}

func TestScoreSalary(t *testing.T) {
	tests := []struct {
		name     string
		wantMin  *int
		wantMax  *int
		offerMin *int
		offerMax *int
		expected int
	}{
		{"offer meets minimum", intPtr(15000), intPtr(25000), intPtr(18000), intPtr(22000), 100},
		{"partial overlap", intPtr(15000), intPtr(25000), intPtr(12000), intPtr(16000), 70},
		{"small gap falls off linearly", intPtr(20000), nil, nil, intPtr(18000), 90},
		{"large gap nearly zero", intPtr(20000), nil, nil, intPtr(1000), 5},
		{"gap at or past minimum scores zero", intPtr(20000), nil, nil, intPtr(0), 0},
		{"worker has no range", nil, nil, intPtr(18000), intPtr(22000), 0},
		{"job has no range", intPtr(15000), intPtr(25000), nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker := &WorkerView{ExpectedSalaryMin: tt.wantMin, ExpectedSalaryMax: tt.wantMax}
			job := &JobView{SalaryMin: tt.offerMin, SalaryMax: tt.offerMax}
			assert.Equal(t, tt.expected, scoreSalary(worker, job))
		})
	}
}

func TestScoreSkillsPartialMatch(t *testing.T) {
	worker := &WorkerView{Skills: []string{"cleaning"}}
	job := &JobView{RequiredSkills: []string{"cleaning", "cooking", "driving", "laundry"}}

	score, matched := scoreSkills(worker, job)
	assert.Equal(t, 25, score)
	assert.Equal(t, []string{"cleaning"}, matched)
}

func TestScoreSkillsBelowThresholdOmitsReason(t *testing.T) {
	worker := &WorkerView{UserID: 1, Skills: []string{"cleaning"}}
	job := &JobView{RequiredSkills: []string{"cleaning", "cooking", "driving"}}

	score := ScoreJob(worker, job)
	assert.Empty(t, score.Reasons)
}

func TestScoreSkillsMatchedListSorted(t *testing.T) {
	worker := &WorkerView{Skills: []string{"driving", "cooking", "cleaning"}}
	job := &JobView{RequiredSkills: []string{"driving", "cleaning", "cooking"}}

	_, matched := scoreSkills(worker, job)
	assert.Equal(t, []string{"cleaning", "cooking", "driving"}, matched)
}
