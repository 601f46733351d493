package profile

// Goals
const (
	GoalPortfolio = "portfolio"
	GoalTechnique = "technique"
	GoalContest   = "contest"
	GoalHobby     = "hobby"
)

// Art forms
const (
	ArtFormPainting   = "painting"
	ArtFormDrawing    = "drawing"
	ArtFormSculpture  = "sculpture"
	ArtFormMixedMedia = "mixed-media"
)

// Experience levels
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// Tag is a closed enum-like choice offered by the signup form.
type Tag struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// The canonical label tables; shared by the API, the wizard and the
// email rendering so the display labels can never drift apart.
var (
	Goals = []Tag{
		{Label: "Build a Portfolio", Value: GoalPortfolio},
		{Label: "Improve Technique", Value: GoalTechnique},
		{Label: "Prepare for Contest", Value: GoalContest},
		{Label: "Creative Hobby", Value: GoalHobby},
	}

	ArtForms = []Tag{
		{Label: "Painting", Value: ArtFormPainting},
		{Label: "Drawing", Value: ArtFormDrawing},
		{Label: "Sculpture", Value: ArtFormSculpture},
		{Label: "Mixed Media", Value: ArtFormMixedMedia},
	}

	ExperienceLevels = []Tag{
		{Label: "Beginner", Value: ExperienceBeginner},
		{Label: "Intermediate", Value: ExperienceIntermediate},
		{Label: "Advanced", Value: ExperienceAdvanced},
	}
)

func labelOf(tags []Tag, value string) string {
	for _, t := range tags {
		if t.Value == value {
			return t.Label
		}
	}
	return value
}

func contains(tags []Tag, value string) bool {
	for _, t := range tags {
		if t.Value == value {
			return true
		}
	}
	return false
}

func GoalLabel(value string) string    { return labelOf(Goals, value) }
func ArtFormLabel(value string) string { return labelOf(ArtForms, value) }

// GoalLabels maps goal values to their display labels, in order.
func GoalLabels(values []string) []string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		labels = append(labels, GoalLabel(v))
	}
	return labels
}

// ArtFormLabels maps art form values to their display labels, in order.
func ArtFormLabels(values []string) []string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		labels = append(labels, ArtFormLabel(v))
	}
	return labels
}
