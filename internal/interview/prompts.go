package interview

import (
	"fmt"
	"strings"
)

// jdBudget caps the job-description text included in a prompt. The upstream
// request-size limit is the constraint, not prompt quality.
const jdBudget = 4000

var categoryCriteria = map[Category]string{
	CategoryTransform: "the candidate's ability to drive change: questioning established ways of working, learning new domains quickly, and adapting past experience to unfamiliar problems",
	CategoryTomorrow:  "the candidate's forward orientation: growth potential, ambition, how they invest in their own development, and how they think about where their field is heading",
	CategoryTogether:  "the candidate's collaboration: communication across roles, handling disagreement, supporting colleagues, and contributing to team culture",
}

// BuildInstruction assembles the instruction text for one category. The
// attached resume travels separately as an inline binary part.
func BuildInstruction(cat Category, req GenerateRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are preparing a job interview for a %s-level candidate", displayLevel(req.Level))
	if req.CandidateName != "" {
		fmt.Fprintf(&b, " named %s", req.CandidateName)
	}
	b.WriteString(". The candidate's resume is attached.\n\n")

	if jd := truncate(req.JobDescription(), jdBudget); jd != "" {
		b.WriteString("Job description:\n")
		b.WriteString(jd)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Write %d interview questions that evaluate %s. ", itemCount(req.Count), categoryCriteria[cat])
	b.WriteString("Ground each question in something specific from the resume or job description.\n\n")
	b.WriteString(`Respond with ONLY a JSON array, no markdown and no explanation:
[{"question": "the question to ask", "intent": "what the interviewer learns from the answer"}]`)

	return b.String()
}

func itemCount(n int) int {
	if n <= 0 {
		return 5
	}
	return n
}

func displayLevel(level string) string {
	level = strings.TrimSpace(level)
	if level == "" {
		return "mid"
	}
	return level
}

// truncate cuts s to at most budget runes without splitting a rune
func truncate(s string, budget int) string {
	s = strings.TrimSpace(s)
	if budget <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget])
}
