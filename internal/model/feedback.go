package model

// Mark is the per-position correctness marking of a guess letter against
// a secret word.
type Mark string

const (
	MarkCorrect Mark = "correct" // right letter, right position
	MarkPresent Mark = "present" // right letter, wrong position
	MarkAbsent  Mark = "absent"  // letter not in the secret (or all copies consumed)
)

// AllCorrect returns true if every mark in the row is MarkCorrect
func AllCorrect(marks []Mark) bool {
	for _, m := range marks {
		if m != MarkCorrect {
			return false
		}
	}
	return len(marks) > 0
}
