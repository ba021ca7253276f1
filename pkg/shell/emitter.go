package shell

import "sort"

// EmitDiff computes the activation command sequence that takes a shell from
// the old variable map to the new one.
//
// Every key in the new map is emitted as a set, even when its value is
// unchanged; re-exporting is idempotent and correctness never depends on
// no-op detection. Keys present only in the old map are emitted as unsets.
// Unsets come first, then sets, each sorted by key, so output is
// diff-stable.
func EmitDiff(old, new map[string]string, d Dialect) []string {
	var unsetKeys []string
	for k := range old {
		if _, ok := new[k]; !ok {
			unsetKeys = append(unsetKeys, k)
		}
	}
	sort.Strings(unsetKeys)

	setKeys := make([]string, 0, len(new))
	for k := range new {
		setKeys = append(setKeys, k)
	}
	sort.Strings(setKeys)

	lines := make([]string, 0, len(unsetKeys)+len(setKeys))
	for _, k := range unsetKeys {
		lines = append(lines, d.UnsetCmd(k))
	}
	for _, k := range setKeys {
		lines = append(lines, d.SetCmd(k, new[k]))
	}
	return lines
}
