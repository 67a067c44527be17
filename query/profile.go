package query

import "fmt"

// Profile bundles the retrieval tuning knobs for one answering style.
//
// The score threshold is a cosine-distance cutoff in [0, 2]; matches at or
// above it are discarded. The thresholds below are calibrated for that
// metric only and are not meaningful under other scoring schemes.
type Profile struct {
	// Name identifies the profile in CLI flags and logs.
	Name string

	// K is the number of matches requested per sub-query.
	K int

	// Threshold is the exclusive upper bound on an accepted match's score.
	Threshold float32

	// Decompose splits a compound user query into its individual
	// questions before retrieval. When false the raw query is the only
	// retrieval input.
	Decompose bool

	// Expand rephrases each planned question into two viewpoint variants
	// to broaden recall. Independent of Decompose, though expanding an
	// undecomposed query is an unusual configuration.
	Expand bool
}

// ProfileFocused retrieves a single best match per expanded sub-query under
// a strict threshold. Suited to precise questions over large tables.
var ProfileFocused = Profile{
	Name:      "focused",
	K:         1,
	Threshold: 0.7,
	Decompose: true,
	Expand:    true,
}

// ProfileBroad retrieves two matches per decomposed sub-query under a
// permissive threshold, without expansion. Suited to exploratory questions.
var ProfileBroad = Profile{
	Name:      "broad",
	K:         2,
	Threshold: 0.9,
	Decompose: true,
	Expand:    false,
}

// ProfileByName resolves a profile from its CLI name.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case ProfileFocused.Name:
		return ProfileFocused, nil
	case ProfileBroad.Name:
		return ProfileBroad, nil
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
}
