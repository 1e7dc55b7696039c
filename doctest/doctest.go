/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package doctest extracts example transcripts from docstrings and
// re-executes them against the host environment.
//
// A transcript is a run of "> "-prefixed input lines, each optionally
// followed by expected output lines, ending at a blank line:
//
//	> incr(41)
//	42
//	> incr("x")
//	incr: number expected for argument no. 1 (got string).
//
// Expected lines may use pattern variables: a line of "?" matches any
// single output line, and "?name" matches any line but must match the
// same text everywhere "?name" appears in the transcript.
package doctest

import (
	"strings"

	"github.com/Comcast/docent/host"
)

// Step is one input and its expected output lines.
type Step struct {
	Input string
	Want  []string
}

// Transcript is a block of steps that share one host state and one
// set of pattern-variable bindings.
type Transcript struct {
	Steps []Step
}

// Extract pulls the transcripts out of a docstring.
func Extract(doc string) []Transcript {
	var (
		acc  []Transcript
		cur  Transcript
		step *Step
	)
	flushStep := func() {
		if step != nil {
			cur.Steps = append(cur.Steps, *step)
			step = nil
		}
	}
	flush := func() {
		flushStep()
		if 0 < len(cur.Steps) {
			acc = append(acc, cur)
			cur = Transcript{}
		}
	}

	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "> "):
			flushStep()
			step = &Step{Input: trimmed[2:]}
		case trimmed == ">":
			flushStep()
			step = &Step{}
		case step != nil:
			step.Want = append(step.Want, trimmed)
		default:
			// Prose before any "> ": not a transcript line.
		}
	}
	flush()

	return acc
}

// Result reports one executed step.
type Result struct {
	Input string
	Want  []string
	Got   []string
	Pass  bool

	// Err is a host-level failure (which may itself be what the
	// transcript expected; see Pass).
	Err error
}

// Runner executes transcripts.
type Runner struct {
	// H is the host environment.  Each transcript gets a fresh one
	// when this is nil.
	H *host.H
}

// Run executes every step of every transcript and compares outputs.
//
// Pattern-variable bindings are scoped to a transcript: "?id" bound
// by one step must match the same text in later steps of that
// transcript.
func (r *Runner) Run(ts []Transcript) []Result {
	var acc []Result
	for _, t := range ts {
		h := r.H
		if h == nil {
			h = host.New()
		}
		bs := bindings{}
		for _, step := range t.Steps {
			res := Result{Input: step.Input, Want: step.Want}

			x, err := h.Eval(step.Input)
			if err != nil {
				res.Err = err
				res.Got = strings.Split(strings.TrimSpace(err.Error()), "\n")
			} else if x != nil {
				res.Got = strings.Split(h.Render(x), "\n")
			}

			// A step with no expected lines doesn't check
			// its output (think assignments, which still
			// evaluate to something).
			res.Pass = len(step.Want) == 0 || matchLines(step.Want, res.Got, bs)
			acc = append(acc, res)
		}
	}
	return acc
}

// Failed filters the results down to the failures.
func Failed(results []Result) []Result {
	var acc []Result
	for _, r := range results {
		if !r.Pass {
			acc = append(acc, r)
		}
	}
	return acc
}

// bindings maps pattern variables to the line text they matched.
// Same idea as pattern-matcher bindings, flattened to whole lines.
type bindings map[string]string

func isVariable(s string) bool {
	return strings.HasPrefix(s, "?")
}

func isAnonymousVariable(s string) bool {
	return s == "?"
}

// matchLines compares expected lines against got lines, extending
// the bindings as variables match.  The bindings are extended in
// place so later steps see them.
func matchLines(want, got []string, bs bindings) bool {
	if len(want) != len(got) {
		return false
	}
	for i, w := range want {
		g := got[i]
		if !isVariable(w) {
			if w != g {
				return false
			}
			continue
		}
		if isAnonymousVariable(w) {
			continue
		}
		if bound, have := bs[w]; have {
			if bound != g {
				return false
			}
			continue
		}
		bs[w] = g
	}
	return true
}
