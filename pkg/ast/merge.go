package ast

type compoundKey struct {
	filename string
	kind     Kind
	name     string
}

// Merge collapses the two-phase emission of compound types.
//
// The parser reports every struct, union and enum as a forward declaration
// as soon as its tag is seen and again once its body has been parsed. Merge
// keeps one entry per (file, kind, name) at the position of the first
// occurrence: the first full definition if there is one, otherwise the
// forward declaration. All other items pass through unchanged.
func Merge(items []Item) []Item {
	merged := make([]Item, 0, len(items))
	seen := make(map[compoundKey]int)
	for _, it := range items {
		if !it.Kind.IsCompound() {
			merged = append(merged, it)
			continue
		}
		key := compoundKey{it.File.Filename, it.Kind, it.Name}
		if i, ok := seen[key]; ok {
			if merged[i].IsForward() && !it.IsForward() {
				merged[i] = it
			}
			continue
		}
		seen[key] = len(merged)
		merged = append(merged, it)
	}
	return merged
}
