package services

import "sort"

// RelevanceScore ranks a reviewer for a submission. Candidates are
// pre-filtered to have at least one thematic overlap; zero-overlap reviewers
// are never scored. The score rewards overlap and breadth of expertise,
// penalizes current workload, and credits completed reviews, floored at 0.
func RelevanceScore(overlapCount, specialtyCount, activeCount, completedCount int) int {
	score := 25 * overlapCount

	breadth := 3 * specialtyCount
	if breadth > 15 {
		breadth = 15
	}
	score += breadth

	score -= 3 * activeCount

	experience := 2 * completedCount
	if experience > 10 {
		experience = 10
	}
	score += experience

	if score < 0 {
		score = 0
	}
	return score
}

// Candidate is one scored entry of the suggestion ranking.
type Candidate struct {
	ReviewerID     int           `json:"reviewer_id"`
	FullName       string        `json:"full_name"`
	Email          string        `json:"email"`
	CommonThemes   []string      `json:"common_themes"`
	RelevanceScore int           `json:"relevance_score"`
	ActiveCount    int           `json:"current_workload"`
	Conflict       ConflictCheck `json:"conflict"`
}

// SortCandidates orders candidates for suggestion: score descending, then
// current workload ascending, then conflict-free before conflicted, then
// reviewer id ascending so equal keys rank deterministically.
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if a.ActiveCount != b.ActiveCount {
			return a.ActiveCount < b.ActiveCount
		}
		if a.Conflict.Conflict != b.Conflict.Conflict {
			return !a.Conflict.Conflict
		}
		return a.ReviewerID < b.ReviewerID
	})
}
