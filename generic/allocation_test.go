package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/heads-planner/generic"
)

func shares(pcts ...int) []generic.Share {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	out := make([]generic.Share, len(pcts))
	for i, p := range pcts {
		out[i] = generic.Share{ID: ids[i], Pct: p}
	}
	return out
}

func pcts(s []generic.Share) []int {
	out := make([]int, len(s))
	for i, sh := range s {
		out[i] = sh.Pct
	}
	return out
}

func TestRebalance_ScalesOthersProportionally(t *testing.T) {
	// GIVEN: 50 / 30 / 20
	// WHEN: the first share is set to 70
	out := generic.Rebalance(shares(50, 30, 20), "a", 70)

	// THEN: the remaining 30 is split 3:2
	assert.Equal(t, []int{70, 18, 12}, pcts(out))
}

func TestRebalance_DriftGoesToFirstOtherShare(t *testing.T) {
	// GIVEN: five equal shares
	// WHEN: one is set to 1, the others round to 25 each (sum 101)
	out := generic.Rebalance(shares(20, 20, 20, 20, 20), "a", 1)

	// THEN: the first other share absorbs -1
	assert.Equal(t, []int{1, 24, 25, 25, 25}, pcts(out))
	assert.Equal(t, 100, generic.SumShares(out))
}

func TestRebalance_RoundsHalfAwayFromZero(t *testing.T) {
	// GIVEN: 50 / 25 / 25
	// WHEN: set to 49, each other becomes 25.5 -> 26, then drift -1 on b
	out := generic.Rebalance(shares(50, 25, 25), "a", 49)

	assert.Equal(t, []int{49, 25, 26}, pcts(out))
}

func TestRebalance_ZeroOtherTotal(t *testing.T) {
	// GIVEN: every other share is 0
	// WHEN: the full share drops to 40
	out := generic.Rebalance(shares(100, 0, 0), "a", 40)

	// THEN: the remainder lands on the first other share
	assert.Equal(t, []int{40, 60, 0}, pcts(out))
}

func TestRebalance_EditedShareIsNotDriftTarget(t *testing.T) {
	// GIVEN: the edited share is the first one in the slice of a pair
	out := generic.Rebalance(shares(30, 70), "b", 10)

	assert.Equal(t, []int{90, 10}, pcts(out))
}

func TestRebalance_UnknownIDReturnsCopy(t *testing.T) {
	in := shares(50, 50)
	out := generic.Rebalance(in, "zzz", 10)

	require.Equal(t, pcts(in), pcts(out))
	out[0].Pct = 99
	assert.Equal(t, 50, in[0].Pct, "input must not be aliased")
}

func TestRebalance_SingleShareStaysAt100(t *testing.T) {
	// GIVEN: one share
	// WHEN: it is edited below 100
	out := generic.Rebalance(shares(100), "a", 60)

	// THEN: nothing can take the rest, so it keeps 100
	assert.Equal(t, []int{100}, pcts(out))
}

func TestRebalance_NegativeDriftNeverGoesBelowZero(t *testing.T) {
	// GIVEN: a zero share first among the others
	base := shares(97, 0, 1, 1, 1)

	// WHEN: a is raised to 98; the others round to 0/1/1/1 (sum 101)
	out := generic.Rebalance(base, "a", 98)

	// THEN: b cannot give, so c absorbs the extra point
	assert.Equal(t, []int{98, 0, 0, 1, 1}, pcts(out))
	assert.Equal(t, 100, generic.SumShares(out))
}

func TestRebalance_IsIdempotent(t *testing.T) {
	base := shares(50, 30, 20)
	first := generic.Rebalance(base, "a", 70)
	second := generic.Rebalance(base, "a", 70)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{50, 30, 20}, pcts(base), "input untouched")
}

func TestRebalance_SumsTo100ForEveryValue(t *testing.T) {
	base := shares(40, 25, 20, 15)
	for _, id := range []string{"a", "b", "c", "d"} {
		for v := 0; v <= 100; v++ {
			out := generic.Rebalance(base, id, v)
			assert.Equal(t, 100, generic.SumShares(out), "id=%s v=%d", id, v)
			for _, s := range out {
				assert.GreaterOrEqual(t, s.Pct, 0)
			}
		}
	}
}

func TestEqualShares(t *testing.T) {
	assert.Nil(t, generic.EqualShares(0))
	assert.Equal(t, []int{100}, generic.EqualShares(1))
	assert.Equal(t, []int{50, 50}, generic.EqualShares(2))
	assert.Equal(t, []int{33, 33, 34}, generic.EqualShares(3))
	assert.Equal(t, []int{16, 16, 16, 16, 16, 20}, generic.EqualShares(6))
}
