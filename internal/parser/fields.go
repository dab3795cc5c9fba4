package parser

// Field pairs an extracted value with the parser's confidence in it.
// Confidence is always within [0,1].
type Field[T any] struct {
	Value      T       `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Resume is the normalized shape produced by ParseResume.
type Resume struct {
	Name              Field[string]   `json:"name"`
	Emails            Field[[]string] `json:"emails"`
	Locations         Field[[]string] `json:"locations"`
	Education         Field[[]string] `json:"education"`
	Skills            Field[[]string] `json:"skills"`
	WorkExperience    Field[[]string] `json:"work_experience"`
	ProjectExperience Field[[]string] `json:"project_experience"`
}
