package domain

// SelectCorrect marks options[index] as the only correct option and returns a
// new slice. An out of range index returns an unchanged copy.
func SelectCorrect(options []OptionDraft, index int) []OptionDraft {
	out := make([]OptionDraft, len(options))
	copy(out, options)
	if index < 0 || index >= len(out) {
		return out
	}
	for i := range out {
		out[i].IsCorrect = i == index
	}
	return out
}

// AddOption appends a blank option ordered after the existing ones.
func AddOption(options []OptionDraft) []OptionDraft {
	out := make([]OptionDraft, len(options), len(options)+1)
	copy(out, options)
	return append(out, OptionDraft{Order: len(options) + 1})
}

// RemoveOption drops options[index]. It is a no-op, reported by false, when
// only one option remains or the index is out of range.
func RemoveOption(options []OptionDraft, index int) ([]OptionDraft, bool) {
	if len(options) <= 1 || index < 0 || index >= len(options) {
		out := make([]OptionDraft, len(options))
		copy(out, options)
		return out, false
	}
	out := make([]OptionDraft, 0, len(options)-1)
	out = append(out, options[:index]...)
	out = append(out, options[index+1:]...)
	return out, true
}

// Renumber sets each option's order to its 1-based position.
func Renumber(options []OptionDraft) []OptionDraft {
	out := make([]OptionDraft, len(options))
	for i, opt := range options {
		opt.Order = i + 1
		out[i] = opt
	}
	return out
}

// CorrectCount reports how many options are flagged correct.
func CorrectCount(options []OptionDraft) int {
	n := 0
	for _, opt := range options {
		if opt.IsCorrect {
			n++
		}
	}
	return n
}
