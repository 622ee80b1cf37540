package domain

// SeriesOption is one recommended job series classification.
type SeriesOption struct {
	// Code is the 4-digit federal occupational series code.
	Code string `json:"code"`

	// Title is the series title, e.g. "Miscellaneous Administration".
	Title string `json:"title"`
}

// GradeRelevancy is the relevancy weighting for one GS grade.
type GradeRelevancy struct {
	Grade      string  `json:"grade"`
	Percentage float64 `json:"percentage"`
}

// Recommendation is the structured result of the AI recommendation
// collaborator for a block of duties text.
type Recommendation struct {
	Recommendations []SeriesOption   `json:"recommendations"`
	GradeRelevancy  []GradeRelevancy `json:"gradeRelevancy"`
	GSGrade         string           `json:"gsGrade"`
}

// FactorResult is the recomputed evaluation of a single factor.
type FactorResult struct {
	// Level is the factor level range, e.g. "1-7".
	Level string `json:"level"`

	// Points is the point value for the level.
	Points int `json:"points"`

	// Rationale is the narrative justification for the level.
	Rationale string `json:"rationale"`
}

// FactorEvaluation is the structured result of the factor recompute
// collaborator. Factors is keyed by factor key ("1".."9", "4A", "4B").
type FactorEvaluation struct {
	Factors     map[string]FactorResult `json:"factors"`
	TotalPoints int                     `json:"totalPoints"`
	FinalGrade  string                  `json:"finalGrade"`
	GradeRange  string                  `json:"gradeRange"`
}
