package services

// ConflictReasonSharedAffiliation is the reason recorded on assignments
// flagged by the affiliation rule.
const ConflictReasonSharedAffiliation = "shared affiliation"

// ConflictCheck is the outcome of conflict-of-interest detection for one
// (submission, candidate reviewer) pair.
type ConflictCheck struct {
	Eligible bool    `json:"eligible"`
	Conflict bool    `json:"conflict"`
	Reason   *string `json:"reason"`
}

// DetectConflict applies the conflict rules in order:
//  1. the reviewer is an author of the submission -> excluded outright;
//  2. the reviewer shares an affiliation with any author -> flagged with
//     "shared affiliation" but stays eligible, de-prioritized by ranking.
//
// The third exclusion rule (reviewer already holds a non-declined
// assignment) is an idempotency guard, not a conflict, and is enforced by
// the candidate-pool query upstream.
func DetectConflict(authorIDs []int, authorAffiliations map[int][]int, reviewerID int, reviewerAffiliations []int) ConflictCheck {
	for _, authorID := range authorIDs {
		if authorID == reviewerID {
			return ConflictCheck{Eligible: false, Conflict: true, Reason: strPtr("reviewer is an author of the submission")}
		}
	}

	reviewerSet := make(map[int]bool, len(reviewerAffiliations))
	for _, id := range reviewerAffiliations {
		reviewerSet[id] = true
	}
	for _, authorID := range authorIDs {
		for _, affID := range authorAffiliations[authorID] {
			if reviewerSet[affID] {
				return ConflictCheck{Eligible: true, Conflict: true, Reason: strPtr(ConflictReasonSharedAffiliation)}
			}
		}
	}

	return ConflictCheck{Eligible: true}
}

func strPtr(s string) *string { return &s }
