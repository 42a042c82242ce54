package models

import (
	"fmt"
	"strings"
)

// StepKind classifies one structured trace step.
type StepKind string

const (
	// StepNote is free-form commentary (stage banners, warnings).
	StepNote StepKind = "note"
	// StepCheck records one unit of work: a divisor tested, a base tried.
	StepCheck StepKind = "check"
	// StepPass records a probabilistic round the candidate survived.
	StepPass StepKind = "pass"
	// StepWitness records the value that proved the candidate composite.
	StepWitness StepKind = "witness"
	// StepLimit records a hard iteration ceiling being hit and the
	// fallback taken.
	StepLimit StepKind = "limit"
)

// Step is one typed record in an execution trace. Iteration counts and
// witnesses are carried structurally; the human-readable line is derived,
// never parsed.
type Step struct {
	Kind   StepKind
	Round  int
	Base   string
	Value  string
	Detail string
}

func (s Step) String() string {
	var b strings.Builder
	if s.Round > 0 {
		fmt.Fprintf(&b, "round %d: ", s.Round)
	}
	if s.Base != "" {
		fmt.Fprintf(&b, "base %s", s.Base)
		if s.Value != "" {
			fmt.Fprintf(&b, " -> %s", s.Value)
		}
		if s.Detail != "" {
			b.WriteString(", ")
		}
	}
	b.WriteString(s.Detail)
	return b.String()
}

// Trace accumulates steps during one algorithm run. Append-only while the
// run executes; the runner copies it into the result, after which it is
// never touched again.
type Trace struct {
	steps []Step
}

// Add appends a structured step.
func (t *Trace) Add(step Step) {
	t.steps = append(t.steps, step)
}

// Notef appends a free-form note step.
func (t *Trace) Notef(format string, args ...any) {
	t.steps = append(t.steps, Step{Kind: StepNote, Detail: fmt.Sprintf(format, args...)})
}

// Steps returns a copy of the recorded steps.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Len reports the number of recorded steps.
func (t *Trace) Len() int {
	return len(t.steps)
}

// RenderSteps produces the human-readable trace lines for a result.
func RenderSteps(steps []Step) []string {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = s.String()
	}
	return lines
}
