package group

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pisetup/internal/logfile"
)

func testGroup(name string, ops []Operation) *Group {
	return &Group{Name: name, Operations: ops, Journal: logfile.NewWriter(&bytes.Buffer{})}
}

func succeed() error { return nil }
func fail() error    { return errors.New("boom") }

func TestExecuteAllSucceeded(t *testing.T) {
	g := testGroup("g", []Operation{
		{Description: "a", Action: succeed},
		{Description: "b", Action: succeed},
	})

	out := g.Execute()

	assert.Equal(t, 2, out.Succeeded)
	assert.Equal(t, 2, out.Expected)
	assert.Equal(t, AllSucceeded, out.Status())
	assert.True(t, out.Qualified())
}

func TestExecuteEmptyGroupIsVacuousSuccess(t *testing.T) {
	out := testGroup("empty", nil).Execute()

	assert.Equal(t, 0, out.Succeeded)
	assert.Equal(t, 0, out.Expected)
	assert.Equal(t, AllSucceeded, out.Status())
}

func TestExecuteNeverShortCircuits(t *testing.T) {
	// 12 operations, #7 fails: the tally must be 11 and the last op must still run.
	var ran []int
	ops := make([]Operation, 12)
	for i := range ops {
		i := i
		ops[i] = Operation{
			Description: "op",
			Action: func() error {
				ran = append(ran, i)
				if i == 6 {
					return errors.New("op 7 failed")
				}
				return nil
			},
		}
	}

	out := testGroup("essentials", ops).Execute()

	require.Len(t, ran, 12, "every operation must run")
	assert.Equal(t, 11, ran[len(ran)-1], "last operation must be reached")
	assert.Equal(t, 11, out.Succeeded)
	assert.Equal(t, Partial, out.Status())
}

func TestExecuteAllFailed(t *testing.T) {
	out := testGroup("g", []Operation{
		{Description: "a", Action: fail},
		{Description: "b", Action: fail},
	}).Execute()

	assert.Equal(t, 0, out.Succeeded)
	assert.Equal(t, AllFailed, out.Status())
	assert.False(t, out.Qualified())
}

func TestExecutionOrderIsDeclarationOrder(t *testing.T) {
	var order []string
	mk := func(name string) Operation {
		return Operation{Description: name, Action: func() error {
			order = append(order, name)
			return nil
		}}
	}

	testGroup("g", []Operation{mk("first"), mk("second"), mk("third")}).Execute()

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestTallyBounds(t *testing.T) {
	cases := []struct {
		name string
		ops  []Operation
	}{
		{"all pass", []Operation{{Action: succeed}, {Action: succeed}}},
		{"all fail", []Operation{{Action: fail}, {Action: fail}}},
		{"mixed", []Operation{{Action: succeed}, {Action: fail}, {Action: succeed}}},
		{"empty", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := testGroup("g", tc.ops).Execute()
			assert.GreaterOrEqual(t, out.Succeeded, 0)
			assert.LessOrEqual(t, out.Succeeded, out.Expected)
		})
	}
}

func TestMinSuccessQualifiesPartial(t *testing.T) {
	g := testGroup("monitoring", []Operation{
		{Description: "a", Action: succeed},
		{Description: "b", Action: fail},
		{Description: "c", Action: fail},
	})
	g.MinSuccess = 1

	out := g.Execute()

	assert.Equal(t, Partial, out.Status())
	assert.True(t, out.Qualified(), "one success meets the threshold")
}

func TestMinSuccessNotMet(t *testing.T) {
	g := testGroup("monitoring", []Operation{
		{Description: "a", Action: fail},
		{Description: "b", Action: fail},
	})
	g.MinSuccess = 1

	out := g.Execute()

	assert.Equal(t, AllFailed, out.Status())
	assert.False(t, out.Qualified())
}

func TestRerunProducesIndependentOutcomes(t *testing.T) {
	// Second run recomputes from scratch; a flaky op can change the outcome.
	calls := 0
	g := testGroup("g", []Operation{{
		Description: "flaky",
		Action: func() error {
			calls++
			if calls == 1 {
				return errors.New("first run fails")
			}
			return nil
		},
	}})

	first := g.Execute()
	second := g.Execute()

	assert.Equal(t, AllFailed, first.Status())
	assert.Equal(t, AllSucceeded, second.Status())
}
