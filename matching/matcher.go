// Package matching classifies observed application names against the
// canonical WinGet package catalog.
//
// Match is a pure function over a catalog slice. Matcher wraps it with
// injected catalog and mapping sources for the legacy (SCCM) strategy chain
// and for batch matching.
package matching

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
)

const (
	// MatchThreshold is the minimum confidence for a matched result.
	MatchThreshold = 0.85
	// CandidateFloor is the minimum score for a candidate to be kept at all.
	CandidateFloor = 0.5
	// IdentifierSegmentScore is the floor applied when an identifying
	// segment of the WinGet id appears in the observed name.
	IdentifierSegmentScore = 0.7

	publisherExactBonus   = 0.2
	publisherPartialBonus = 0.1

	matchedAlternatives = 3
	partialAlternatives = 5
)

type scoredCandidate struct {
	candidate model.CandidateMapping
	score     float64
}

// Match classifies one observed application name, with an optional publisher,
// against catalog. It never fails; the worst case is an unmatched result.
func Match(name, publisher string, catalog []model.CandidateMapping) model.MatchResult {
	normalizedName := util.NormalizeAppName(name)
	normalizedPublisher := util.NormalizePublisher(publisher)

	if result, ok := exactMatch(normalizedName, catalog); ok {
		return result
	}
	return classify(rankCandidates(normalizedName, normalizedPublisher, catalog))
}

// exactMatch returns a matched result when normalizedName equals the
// normalization of any alias in catalog.
func exactMatch(normalizedName string, catalog []model.CandidateMapping) (model.MatchResult, bool) {
	if normalizedName == "" {
		return model.MatchResult{}, false
	}
	for _, candidate := range catalog {
		for _, alias := range candidate.Aliases {
			if util.NormalizeAppName(alias) == normalizedName {
				return matchedResult(candidate, 1.0, []model.PartialMatch{}), true
			}
		}
	}
	return model.MatchResult{}, false
}

// scoreCandidate scores one catalog entry against an already normalized name
// and publisher. The result is capped at 1.0.
func scoreCandidate(normalizedName, normalizedPublisher string, candidate model.CandidateMapping) float64 {
	score := 0.0

	for _, alias := range candidate.Aliases {
		normalizedAlias := util.NormalizeAppName(alias)
		if normalizedName == normalizedAlias {
			score = 1.0
			break
		}
		if s := util.CalculateSimilarity(normalizedName, normalizedAlias); s > score {
			score = s
		}
	}

	// The first segment is the publisher ("Microsoft" in "Microsoft.Edge").
	segments := strings.Split(strings.ToLower(candidate.WingetID), ".")
	for _, segment := range segments[1:] {
		if utf8.RuneCountInString(segment) > 3 && strings.Contains(normalizedName, segment) && score < IdentifierSegmentScore {
			score = IdentifierSegmentScore
		}
	}

	// A catalog publisher that normalizes to nothing still earns the partial
	// bonus, since every publisher contains the empty string.
	if normalizedPublisher != "" && candidate.Publisher != "" {
		candidatePublisher := util.NormalizePublisher(candidate.Publisher)
		switch {
		case normalizedPublisher == candidatePublisher:
			score += publisherExactBonus
		case strings.Contains(normalizedPublisher, candidatePublisher),
			strings.Contains(candidatePublisher, normalizedPublisher):
			score += publisherPartialBonus
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// rankCandidates scores every candidate, drops those below CandidateFloor and
// sorts the rest by score descending. Ties keep catalog order.
func rankCandidates(normalizedName, normalizedPublisher string, catalog []model.CandidateMapping) []scoredCandidate {
	ranked := make([]scoredCandidate, 0)
	for _, candidate := range catalog {
		score := scoreCandidate(normalizedName, normalizedPublisher, candidate)
		if score >= CandidateFloor {
			ranked = append(ranked, scoredCandidate{candidate: candidate, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// classify turns a ranked candidate list into a MatchResult.
func classify(ranked []scoredCandidate) model.MatchResult {
	if len(ranked) == 0 {
		return model.UnmatchedResult()
	}

	best := ranked[0]
	if best.score >= MatchThreshold {
		return matchedResult(best.candidate, best.score, toPartialMatches(window(ranked, 1, 1+matchedAlternatives)))
	}

	result := matchedResult(best.candidate, best.score, toPartialMatches(window(ranked, 0, partialAlternatives)))
	result.Status = model.MatchStatusPartial
	return result
}

func matchedResult(candidate model.CandidateMapping, confidence float64, alternatives []model.PartialMatch) model.MatchResult {
	id := candidate.WingetID
	name := candidate.DisplayName()
	return model.MatchResult{
		Status:       model.MatchStatusMatched,
		WingetID:     &id,
		WingetName:   &name,
		Confidence:   confidence,
		Alternatives: alternatives,
	}
}

func window(ranked []scoredCandidate, from, to int) []scoredCandidate {
	if from > len(ranked) {
		from = len(ranked)
	}
	if to > len(ranked) {
		to = len(ranked)
	}
	return ranked[from:to]
}

func toPartialMatches(ranked []scoredCandidate) []model.PartialMatch {
	matches := make([]model.PartialMatch, 0, len(ranked))
	for _, sc := range ranked {
		matches = append(matches, model.PartialMatch{
			WingetID:   sc.candidate.WingetID,
			Name:       sc.candidate.DisplayName(),
			Publisher:  sc.candidate.Publisher,
			Version:    nil,
			Confidence: sc.score,
			Purl:       util.WingetPURL(sc.candidate.WingetID, ""),
		})
	}
	return matches
}
