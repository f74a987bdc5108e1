package bwvalidators

import "github.com/blockwatch-dev/blockwatch/pkg/bwvalidate"

// All returns every built-in validator, in their defined ordering.
// check-ai uses the default environment-configured AI client; callers
// wanting a test double should build the set manually.
func All() []bwvalidate.Validator {
	return []bwvalidate.Validator{
		NewAffectsValidator(),
		NewKeepSortedValidator(),
		NewKeepUniqueValidator(),
		NewLineCountValidator(),
		NewLinePatternValidator(),
		NewCheckAIValidator(NewOpenAIClientFromEnv()),
		NewCheckLuaValidator(),
	}
}

// Enabled filters a validator set by a disabled-code set, as populated
// by the CLI's repeatable "-D code" flag.
func Enabled(all []bwvalidate.Validator, disabled map[string]bool) []bwvalidate.Validator {
	if len(disabled) == 0 {
		return all
	}
	var out []bwvalidate.Validator
	for _, v := range all {
		if !disabled[v.Code()] {
			out = append(out, v)
		}
	}
	return out
}
