package badge

import (
	"errors"
	"fmt"
	"sort"
)

// Evaluate runs the full catalog against the context and returns results in
// catalog display order. Evaluator failures are isolated: a failing badge is
// skipped and its error joined into the returned error while the remaining
// badges still evaluate, so one broken definition cannot blank every view.
func Evaluate(ctx Context) ([]Result, error) {
	defs, err := Catalog()
	if err != nil {
		return nil, err
	}
	return EvaluateCatalog(ctx, defs)
}

// EvaluateCatalog evaluates an explicit definition list, sorted by Order
// ascending with declaration order as the stable tie-break.
func EvaluateCatalog(ctx Context, defs []Definition) ([]Result, error) {
	ordered := append([]Definition(nil), defs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	results := make([]Result, 0, len(ordered))
	var failures []error
	for _, def := range ordered {
		result, err := evaluateOne(def, ctx)
		if err != nil {
			failures = append(failures, fmt.Errorf("badge %s: %w", def.ID, err))
			continue
		}
		results = append(results, result)
	}

	return results, errors.Join(failures...)
}

func evaluateOne(def Definition, ctx Context) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("evaluator panicked: %v", rec)
		}
	}()

	if def.Evaluate == nil {
		return Result{}, fmt.Errorf("evaluator is missing")
	}
	return def.Evaluate(ctx)
}
