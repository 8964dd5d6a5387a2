package jwtauth

import "strings"

// RequireAll succeeds only if every required scope is granted.
func RequireAll(granted, required []string) error {
	have := toSet(granted)

	var missing []string
	for _, scope := range required {
		if !have[scope] {
			missing = append(missing, scope)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return &ForbiddenError{
		Mode:     ScopeModeAll,
		Required: copyScopes(required),
		Granted:  copyScopes(granted),
		Missing:  missing,
	}
}

// AcceptAny succeeds if at least one accepted scope is granted.
// An empty accepted set never succeeds.
func AcceptAny(granted, accepted []string) error {
	have := toSet(granted)
	for _, scope := range accepted {
		if have[scope] {
			return nil
		}
	}

	return &ForbiddenError{
		Mode:     ScopeModeAny,
		Required: copyScopes(accepted),
		Granted:  copyScopes(granted),
	}
}

// ScopeSet is a list of scopes in the space-delimited form used by OAuth2.
type ScopeSet []string

// ParseScopes splits a space-delimited scope string, dropping duplicates.
func ParseScopes(s string) ScopeSet {
	fields := strings.Fields(s)
	seen := make(map[string]bool, len(fields))
	out := make(ScopeSet, 0, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func (s ScopeSet) String() string {
	return strings.Join(s, " ")
}

// Has reports whether scope is in the set.
func (s ScopeSet) Has(scope string) bool {
	for _, v := range s {
		if v == scope {
			return true
		}
	}
	return false
}

func toSet(scopes []string) map[string]bool {
	set := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		set[s] = true
	}
	return set
}

func copyScopes(scopes []string) []string {
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}
