package shell_test

import (
	"testing"

	"github.com/envmgr/envmgr/pkg/shell"
	"github.com/stretchr/testify/assert"
)

func TestEmitDiff(t *testing.T) {
	old := map[string]string{"A": "1", "B": "2"}
	new := map[string]string{"B": "3", "C": "4"}

	lines := shell.EmitDiff(old, new, shell.DialectBash)
	assert.Equal(t, []string{
		"unset A",
		"export B=3",
		"export C=4",
	}, lines)
}

func TestEmitDiffFish(t *testing.T) {
	old := map[string]string{"A": "1"}
	new := map[string]string{"B": "two words"}

	lines := shell.EmitDiff(old, new, shell.DialectFish)
	assert.Equal(t, []string{
		"set -e A",
		"set -gx B 'two words'",
	}, lines)
}

func TestEmitDiffNoPrevious(t *testing.T) {
	lines := shell.EmitDiff(nil, map[string]string{"A": "1"}, shell.DialectBash)
	assert.Equal(t, []string{"export A=1"}, lines)
}

func TestEmitDiffUnchangedStillSet(t *testing.T) {
	m := map[string]string{"A": "1"}
	lines := shell.EmitDiff(m, m, shell.DialectBash)
	assert.Equal(t, []string{"export A=1"}, lines, "unchanged keys are re-exported")
}

func TestEmitDiffEmpty(t *testing.T) {
	assert.Empty(t, shell.EmitDiff(nil, nil, shell.DialectBash))
}

func TestEmitDiffDeterministic(t *testing.T) {
	old := map[string]string{"Z": "1", "A": "1", "M": "1"}
	first := shell.EmitDiff(old, nil, shell.DialectBash)
	assert.Equal(t, []string{"unset A", "unset M", "unset Z"}, first)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, shell.EmitDiff(old, nil, shell.DialectBash))
	}
}
