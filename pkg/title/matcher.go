package title

import "github.com/hbollon/go-edlib"

// Confidence represents the confidence level of a title match.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the outcome of matching a title against candidates.
type MatchResult struct {
	Candidate  string  // The matched candidate, verbatim
	Score      float64 // Jaro-Winkler similarity (0.0-1.0)
	Confidence Confidence
}

// Match finds the best candidate for a title. Uses Jaro-Winkler
// similarity over normalized strings, which favors prefix matches
// (good for release names carrying trailing quality tags).
func Match(want string, candidates []string) MatchResult {
	if len(candidates) == 0 {
		return MatchResult{Confidence: ConfidenceNone}
	}

	normalized := Normalize(want)
	best := MatchResult{Confidence: ConfidenceNone}

	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalized, Normalize(candidate)))
		if score > best.Score {
			best.Candidate = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Candidate = ""
	}

	return best
}
