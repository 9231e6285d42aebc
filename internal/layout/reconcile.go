package layout

import (
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Reconcile repairs a stored order against the current defaults. Stored items
// keep their relative order, defaults missing from stored are appended in
// default order, and items no longer in defaults are dropped.
//
// When neither slice has duplicates the result is a permutation of defaults.
// Duplicates already present in stored are kept.
func Reconcile(stored, defaults []string) []string {
	inStored := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		inStored[id] = struct{}{}
	}
	known := make(map[string]struct{}, len(defaults))
	for _, id := range defaults {
		known[id] = struct{}{}
	}

	merged := slices.Clone(stored)
	for _, id := range defaults {
		if _, ok := inStored[id]; !ok {
			merged = append(merged, id)
		}
	}

	out := make([]string, 0, len(merged))
	for _, id := range merged {
		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Move returns a copy of order with the element at from moved to index to.
// Out-of-range indexes return an unchanged copy.
func Move(order []string, from, to int) []string {
	out := slices.Clone(order)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}

// IsPermutation reports whether order holds exactly the members of defaults,
// each once.
func IsPermutation(order, defaults []string) bool {
	if len(order) != len(defaults) {
		return false
	}
	a, b := slices.Clone(order), slices.Clone(defaults)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Diff renders a line diff between two orders, one identifier per line,
// prefixing removed lines with "-", added lines with "+" and unchanged lines
// with a space. Equal orders produce "".
func Diff(before, after []string) string {
	if slices.Equal(before, after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func joinLines(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return strings.Join(ids, "\n") + "\n"
}
