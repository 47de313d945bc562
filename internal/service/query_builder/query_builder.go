package query_builder

import "strings"

// Abstract mood tags match movie overviews poorly in embedding space,
// so each known mood is substituted with a phrase closer to catalog
// vocabulary. Unknown tags pass through unchanged.
var moodExpansion = map[string]string{
	"uplifting":    "uplifting feel-good heartwarming inspiring positive comedy family",
	"nostalgic":    "nostalgic classic retro coming-of-age childhood memories drama romance",
	"cozy":         "cozy warm comfort feel-good light-hearted family comedy romance",
	"mind-bending": "mind-bending complex twist puzzle science fiction mystery thriller",
	"dark":         "dark gritty noir disturbing crime horror thriller",
	"emotional":    "emotional moving tearjerker heartbreaking drama romance",
	"adventurous":  "adventurous epic journey quest exploration adventure action fantasy",
	"relaxed":      "relaxed easy-going laid-back light comedy drama feel-good",
	"intense":      "intense gripping suspenseful high-stakes action thriller crime",
	"thrilling":    "thrilling suspenseful edge-of-seat tension thriller action horror",
	"romantic":     "romantic love story relationship passion romance drama",
	"funny":        "funny hilarious comedy humor laugh entertaining",
}

type Builder struct{}

func New() *Builder {
	return &Builder{}
}

// Build joins the expanded moods with the trimmed free-text note into
// a single query string. An empty result means the participant gave
// no usable signal and callers must not run a similarity search.
func (b *Builder) Build(moods []string, note string) string {
	expanded := make([]string, 0, len(moods))
	for _, mood := range moods {
		if phrase, ok := moodExpansion[mood]; ok {
			expanded = append(expanded, phrase)
		} else {
			expanded = append(expanded, mood)
		}
	}

	moodText := strings.Join(expanded, " ")
	noteText := strings.TrimSpace(note)

	return strings.TrimSpace(moodText + " " + noteText)
}
