// internal/swipes/scorer.go
// Compatibility scoring between a worker profile and a job post.
//
// The total score is a weighted sum of four independent sub-scores,
// each on a 0..100 scale: job type (25%), location (25%), salary
// overlap (20%), skills (30%). Missing data on either side scores the
// affected dimension 0 rather than erroring. Same inputs always yield
// the same score and reason list.

package swipes

import (
	"fmt"
	"sort"
	"strings"
)

const (
	weightJobType  = 25
	weightLocation = 25
	weightSalary   = 20
	weightSkills   = 30

	reasonThreshold = 50
)

// ScoreBreakdown holds the weighted contribution of each dimension.
// The four fields sum to the total score.
type ScoreBreakdown struct {
	JobType  int `json:"job_type"`
	Location int `json:"location"`
	Salary   int `json:"salary"`
	Skills   int `json:"skills"`
}

// MatchScore is the result of scoring one job for one worker. It is
// computed per request and never persisted.
type MatchScore struct {
	Total     int            `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Reasons   []string       `json:"reasons"`
}

// ScoreJob computes the compatibility between a worker and a job.
func ScoreJob(worker *WorkerView, job *JobView) MatchScore {
	jobType := scoreJobType(worker, job)
	location := scoreLocation(worker, job)
	salary := scoreSalary(worker, job)
	skills, matched := scoreSkills(worker, job)

	breakdown := ScoreBreakdown{
		JobType:  weighted(jobType, weightJobType),
		Location: weighted(location, weightLocation),
		Salary:   weighted(salary, weightSalary),
		Skills:   weighted(skills, weightSkills),
	}

	total := breakdown.JobType + breakdown.Location + breakdown.Salary + breakdown.Skills

	reasons := []string{}
	if jobType >= reasonThreshold {
		reasons = append(reasons, fmt.Sprintf("Looking for %s work", job.JobType))
	}
	if location >= reasonThreshold {
		reasons = append(reasons, "Located in your area")
	}
	if salary >= reasonThreshold {
		reasons = append(reasons, "Salary fits your expectations")
	}
	if skills >= reasonThreshold && len(matched) > 0 {
		reasons = append(reasons, "Skills matched: "+strings.Join(matched, ", "))
	}

	return MatchScore{Total: total, Breakdown: breakdown, Reasons: reasons}
}

func weighted(subScore, weight int) int {
	return subScore * weight / 100
}

// scoreJobType is 100 when the job's type is among the worker's
// preferred types, 0 otherwise. No preferences means no signal.
func scoreJobType(worker *WorkerView, job *JobView) int {
	if job.JobType == "" || len(worker.PreferredJobTypes) == 0 {
		return 0
	}
	for _, t := range worker.PreferredJobTypes {
		if strings.EqualFold(t, job.JobType) {
			return 100
		}
	}
	return 0
}

// scoreLocation rewards a shared city fully and a shared region
// partially.
func scoreLocation(worker *WorkerView, job *JobView) int {
	if worker.City != nil && job.City != nil && strings.EqualFold(*worker.City, *job.City) {
		return 100
	}
	if worker.Region != nil && job.Region != nil && strings.EqualFold(*worker.Region, *job.Region) {
		return 60
	}
	return 0
}

// scoreSalary measures overlap between the worker's expected range and
// the job's offered range. Either side missing its range scores 0.
func scoreSalary(worker *WorkerView, job *JobView) int {
	if worker.ExpectedSalaryMin == nil && worker.ExpectedSalaryMax == nil {
		return 0
	}
	if job.SalaryMin == nil && job.SalaryMax == nil {
		return 0
	}

	wantMin, _ := rangeBounds(worker.ExpectedSalaryMin, worker.ExpectedSalaryMax)
	offerMin, offerMax := rangeBounds(job.SalaryMin, job.SalaryMax)

	if offerMax < wantMin {
		// Offer tops out below expectations. Score falls off linearly
		// with the relative gap.
		gap := wantMin - offerMax
		if wantMin <= 0 || gap >= wantMin {
			return 0
		}
		return 100 - gap*100/wantMin
	}
	if offerMin >= wantMin {
		return 100
	}
	// Ranges overlap partially.
	return 70
}

// rangeBounds fills in a missing bound from the other.
func rangeBounds(min, max *int) (int, int) {
	switch {
	case min != nil && max != nil:
		return *min, *max
	case min != nil:
		return *min, *min
	default:
		return *max, *max
	}
}

// scoreSkills is the percentage of the job's required skills the
// worker lists, case-insensitive. Returns the matched skills in sorted
// order for reason generation.
func scoreSkills(worker *WorkerView, job *JobView) (int, []string) {
	if len(job.RequiredSkills) == 0 || len(worker.Skills) == 0 {
		return 0, nil
	}

	have := make(map[string]struct{}, len(worker.Skills))
	for _, s := range worker.Skills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matched := []string{}
	for _, required := range job.RequiredSkills {
		if _, ok := have[strings.ToLower(strings.TrimSpace(required))]; ok {
			matched = append(matched, required)
		}
	}
	sort.Strings(matched)

	return len(matched) * 100 / len(job.RequiredSkills), matched
}
