package common

// Checker holds the chain of `CheckerFunc`. The funcs get the checker itself,
// so the state between the steps lives in the struct which embeds
// `DefaultChecker`.
type Checker interface {
	GetFuncs() []CheckerFunc
}

type CheckerFunc func(Checker, ...interface{}) error

// CheckerDeferFunc is called after each step with the index of the step and
// its result.
type CheckerDeferFunc func(int, Checker, error)

var DefaultDeferFunc CheckerDeferFunc = func(int, Checker, error) {}

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

// RunChecker stops at the first failed step.
func RunChecker(checker Checker, deferFunc CheckerDeferFunc, args ...interface{}) (err error) {
	if deferFunc == nil {
		deferFunc = DefaultDeferFunc
	}

	for i, f := range checker.GetFuncs() {
		err = f(checker, args...)
		deferFunc(i, checker, err)
		if err != nil {
			return
		}
	}

	return
}
