package parser

import "math"

// OverallConfidence reduces a parsed resume to a single score: the
// arithmetic mean of the name, emails, locations and skills confidences,
// rounded to two decimal places. A field that was not extracted
// contributes 0.0. Education, work and project confidences are recorded
// per-field but excluded from the mean.
func OverallConfidence(r Resume) float64 {
	sum := r.Name.Confidence +
		r.Emails.Confidence +
		r.Locations.Confidence +
		r.Skills.Confidence
	return math.Round(sum/4.0*100) / 100
}
