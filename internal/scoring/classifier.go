package scoring

// Band is the traffic-light classification of a percentage score.
type Band string

const (
	BandPending      Band = "pending"
	BandExcellent    Band = "excellent"
	BandIntermediate Band = "intermediate"
	BandBad          Band = "bad"
)

// Feedback is the display payload attached to a band.
type Feedback struct {
	Band            Band     `json:"band"`
	Message         string   `json:"message"`
	Icon            string   `json:"icon"`
	Recommendations []string `json:"recommendations"`
}

var feedbackByBand = map[Band]Feedback{
	BandPending: {
		Band:    BandPending,
		Message: "Not enough answers yet to evaluate this result.",
		Icon:    "gray",
	},
	BandExcellent: {
		Band:    BandExcellent,
		Message: "Excellent performance. The municipality is a sustainability reference.",
		Icon:    "green",
		Recommendations: []string{
			"Document current practices so they survive administration changes.",
			"Share results with neighboring municipalities and regional networks.",
			"Set stretch targets for the next assessment cycle.",
		},
	},
	BandIntermediate: {
		Band:    BandIntermediate,
		Message: "Intermediate performance. Solid base with clear room to improve.",
		Icon:    "yellow",
		Recommendations: []string{
			"Prioritize the lowest-scoring modules for the next budget cycle.",
			"Assign an owner and a deadline to each open action item.",
			"Review municipal bylaws against the questions answered negatively.",
		},
	},
	BandBad: {
		Band:    BandBad,
		Message: "Insufficient performance. Structural action is needed.",
		Icon:    "red",
		Recommendations: []string{
			"Establish a sustainability working group with a formal mandate.",
			"Start with low-cost measures: separate waste collection, public lighting audit.",
			"Seek state and federal programs that fund municipal sustainability projects.",
		},
	},
}

// Classify maps a percentage to its traffic-light feedback.
// Thresholds: nil is pending, >= 80 excellent, >= 50 intermediate, else bad.
func Classify(pct *float64) Feedback {
	switch {
	case pct == nil:
		return feedbackByBand[BandPending]
	case *pct >= 80:
		return feedbackByBand[BandExcellent]
	case *pct >= 50:
		return feedbackByBand[BandIntermediate]
	default:
		return feedbackByBand[BandBad]
	}
}
