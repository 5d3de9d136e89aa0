package dto

import "skillswap/internal/usecase"

type MatchCandidateResponse struct {
	User       UserProfileResponse `json:"user"`
	MatchType  string              `json:"match_type"`
	MatchScore int                 `json:"match_score"`
}

type MatchDetailsResponse struct {
	User           UserProfileResponse   `json:"user"`
	MatchType      string                `json:"match_type"`
	TheyCanTeachMe []LedgerEntryResponse `json:"they_can_teach_me"`
	ICanTeachThem  []LedgerEntryResponse `json:"i_can_teach_them"`
}

func NewMatchCandidateResponses(matches []usecase.MatchCandidate) []MatchCandidateResponse {
	out := make([]MatchCandidateResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchCandidateResponse{
			User:       NewUserProfileResponse(m.Profile),
			MatchType:  string(m.MatchType),
			MatchScore: m.MatchScore,
		})
	}
	return out
}

func NewMatchDetailsResponse(d usecase.MatchDetails) MatchDetailsResponse {
	return MatchDetailsResponse{
		User:           NewUserProfileResponse(d.Profile),
		MatchType:      string(d.MatchType),
		TheyCanTeachMe: NewLedgerEntryResponses(d.TheyCanTeachMe),
		ICanTeachThem:  NewLedgerEntryResponses(d.ICanTeachThem),
	}
}
