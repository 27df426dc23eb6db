package interview

// Category is one of the three fixed evaluation buckets questions are
// grouped into.
type Category string

const (
	CategoryTransform Category = "transform"
	CategoryTomorrow  Category = "tomorrow"
	CategoryTogether  Category = "together"
)

// Categories returns the buckets in presentation order
func Categories() []Category {
	return []Category{CategoryTransform, CategoryTomorrow, CategoryTogether}
}

// Valid reports whether c is one of the fixed buckets
func (c Category) Valid() bool {
	switch c {
	case CategoryTransform, CategoryTomorrow, CategoryTogether:
		return true
	}
	return false
}

// Label returns the display name for a category
func (c Category) Label() string {
	switch c {
	case CategoryTransform:
		return "Transform"
	case CategoryTomorrow:
		return "Tomorrow"
	case CategoryTogether:
		return "Together"
	}
	return string(c)
}

// QuestionCandidate is a single generated question+intent pair, not yet
// chosen by the interviewer. Never mutated after creation; refreshing a
// category discards and regenerates candidates wholesale.
type QuestionCandidate struct {
	Question string   `json:"question"`
	Intent   string   `json:"intent"`
	Category Category `json:"category"`
}

// GenerateRequest carries the interviewer's inputs for one generation run.
// JDText is manually pasted content, JDFetched is text retrieved from a URL;
// pasted text always wins when both are present.
type GenerateRequest struct {
	CandidateName string
	Level         string
	JDText        string
	JDFetched     string
	Resume        []byte
	ResumeMIME    string
	Count         int
	Temperature   float32
}

// JobDescription resolves the input precedence rule: explicit paste always
// wins over fetched content.
func (r GenerateRequest) JobDescription() string {
	if r.JDText != "" {
		return r.JDText
	}
	return r.JDFetched
}
