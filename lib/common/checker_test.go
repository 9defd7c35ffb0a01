package common

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type countChecker struct {
	DefaultChecker

	Count int
}

func TestRunChecker(t *testing.T) {
	step := func(c Checker, args ...interface{}) error {
		c.(*countChecker).Count++
		return nil
	}

	checker := &countChecker{DefaultChecker: DefaultChecker{Funcs: []CheckerFunc{step, step, step}}}
	require.NoError(t, RunChecker(checker, nil))
	require.Equal(t, 3, checker.Count)
}

func TestRunCheckerStopsAtError(t *testing.T) {
	failed := fmt.Errorf("showstopper")
	step := func(c Checker, args ...interface{}) error {
		c.(*countChecker).Count++
		return nil
	}
	fail := func(Checker, ...interface{}) error { return failed }

	var deferred []int
	checker := &countChecker{DefaultChecker: DefaultChecker{Funcs: []CheckerFunc{step, fail, step}}}
	err := RunChecker(checker, func(i int, _ Checker, err error) {
		deferred = append(deferred, i)
	})

	require.Equal(t, failed, err)
	require.Equal(t, 1, checker.Count)
	require.Equal(t, []int{0, 1}, deferred)
}

func TestRunCheckerArgs(t *testing.T) {
	var got []interface{}
	f := func(_ Checker, args ...interface{}) error {
		got = args
		return nil
	}

	require.NoError(t, RunChecker(&DefaultChecker{Funcs: []CheckerFunc{f}}, nil, "a", 1))
	require.Equal(t, []interface{}{"a", 1}, got)
}
