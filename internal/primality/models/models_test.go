package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "primelab/pkg/domain-errors"
)

func TestParseCandidate(t *testing.T) {
	t.Run("valid decimal parses", func(t *testing.T) {
		c, err := ParseCandidate("104729")
		require.NoError(t, err)
		assert.Equal(t, "104729", c.String())
		assert.Equal(t, "104729", c.Value().String())
	})

	t.Run("arbitrary precision is preserved", func(t *testing.T) {
		huge := strings.Repeat("9", 80)
		c, err := ParseCandidate(huge)
		require.NoError(t, err)
		assert.Equal(t, huge, c.String())
	})

	t.Run("value returns a defensive copy", func(t *testing.T) {
		c, err := ParseCandidate("97")
		require.NoError(t, err)

		v := c.Value()
		v.SetInt64(0)
		assert.Equal(t, "97", c.Value().String())
	})

	t.Run("rejections", func(t *testing.T) {
		for _, bad := range []string{"", "abc", "12.5", "1e10", "0x1F", "12 34", "-7", "0"} {
			_, err := ParseCandidate(bad)
			require.Error(t, err, "input %q", bad)
			assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err), "input %q", bad)
		}
	})
}

func TestParseRounds(t *testing.T) {
	for _, ok := range []int{1, 40, 100} {
		got, err := ParseRounds(ok)
		require.NoError(t, err)
		assert.Equal(t, ok, got)
	}
	for _, bad := range []int{0, -1, 101, 1000} {
		_, err := ParseRounds(bad)
		require.Error(t, err, "rounds %d", bad)
		assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	}
}

func TestTrace(t *testing.T) {
	t.Run("steps returns an isolated copy", func(t *testing.T) {
		var tr Trace
		tr.Notef("stage 1")
		tr.Add(Step{Kind: StepCheck, Round: 1, Value: "3", Detail: "does not divide"})

		steps := tr.Steps()
		require.Len(t, steps, 2)

		steps[0].Detail = "mutated"
		assert.Equal(t, "stage 1", tr.Steps()[0].Detail)
	})

	t.Run("rendering is derived from structure", func(t *testing.T) {
		step := Step{Kind: StepWitness, Round: 3, Base: "52", Value: "416", Detail: "a^(n-1) mod n is not 1"}
		line := step.String()
		assert.Contains(t, line, "round 3")
		assert.Contains(t, line, "base 52")
		assert.Contains(t, line, "416")
	})
}
