package namegen

import "math"

// Preference selects which accepted candidate MakeName returns.
type Preference int

const (
	// PreferAverage picks the candidate whose length is closest to the
	// training mean, by relative error. This is the default.
	PreferAverage Preference = iota
	// PreferMin picks the candidate with the smallest length value.
	PreferMin
	// PreferMax picks the candidate with the largest length value.
	PreferMax
)

const (
	// DefaultCandidates is how many accepted candidates MakeName gathers
	// before choosing one.
	DefaultCandidates = 2
	// DefaultMaxAttempts bounds walk retries per candidate slot. It is an
	// iteration counter, not a timeout.
	DefaultMaxAttempts = 1000
)

// ValidateFunc is a caller-supplied acceptance predicate over a candidate
// name. Returning false rejects the candidate.
type ValidateFunc func(name string) bool

// nameOptions is used by MakeName to configure default options.
type nameOptions struct {
	excludeTraining bool
	excludeHistory  bool
	recordHistory   bool
	candidates      int
	preference      Preference
	maxAttempts     int
	validate        ValidateFunc
	rng             RNG
}

// NameOption configures a single MakeName call.
type NameOption func(*nameOptions)

// WithTrainingExclusion controls whether candidates matching a training
// name verbatim are rejected. Enabled by default.
func WithTrainingExclusion(exclude bool) NameOption {
	return func(o *nameOptions) { o.excludeTraining = exclude }
}

// WithHistoryExclusion controls whether candidates already present in the
// linked history are rejected. Enabled by default.
func WithHistoryExclusion(exclude bool) NameOption {
	return func(o *nameOptions) { o.excludeHistory = exclude }
}

// WithHistoryRecording controls whether the winning name is added to the
// linked history, where it propagates to every linked set. Enabled by
// default.
func WithHistoryRecording(record bool) NameOption {
	return func(o *nameOptions) { o.recordHistory = record }
}

// WithCandidates sets how many accepted candidates to gather before
// choosing a winner.
func WithCandidates(n int) NameOption {
	return func(o *nameOptions) { o.candidates = n }
}

// WithPreference sets how the winner is chosen among accepted candidates.
func WithPreference(p Preference) NameOption {
	return func(o *nameOptions) { o.preference = p }
}

// WithMaxAttempts caps walk retries per candidate slot.
func WithMaxAttempts(n int) NameOption {
	return func(o *nameOptions) { o.maxAttempts = n }
}

// WithValidator adds a caller predicate; candidates failing it are rejected
// regardless of the exclusion flags.
func WithValidator(fn ValidateFunc) NameOption {
	return func(o *nameOptions) { o.validate = fn }
}

// WithRNG uses r for this call instead of the process-wide source.
func WithRNG(r RNG) NameOption {
	return func(o *nameOptions) { o.rng = r }
}

// MakeName generates one name, or returns the empty string when every
// candidate slot exhausts its attempts. The empty result is an expected
// outcome of restrictive settings (a small corpus with training exclusion,
// a strict validator, a broad banned-word set, or a nearly full history)
// and should be checked like any other value, not treated as an error.
//
// Each of the configured candidate slots retries raw walks up to the
// attempt cap, keeping the first walk that passes every active filter; a
// slot that runs out of attempts contributes nothing. The winner among
// accepted candidates is chosen by the configured Preference, scoring with
// the set's length function; ties go to the earliest accepted candidate.
func (ns *NameSet) MakeName(opts ...NameOption) string {
	options := &nameOptions{
		excludeTraining: true,
		excludeHistory:  true,
		recordHistory:   true,
		candidates:      DefaultCandidates,
		preference:      PreferAverage,
		maxAttempts:     DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(options)
	}
	rng := options.rng
	if rng == nil {
		rng = CurrentRNG()
	}

	var accepted []string
	for slot := 0; slot < options.candidates; slot++ {
		for attempt := 0; attempt < options.maxAttempts; attempt++ {
			name := ns.model.Walk(rng)
			if ns.acceptable(name, options) {
				accepted = append(accepted, name)
				break
			}
		}
	}
	if len(accepted) == 0 {
		return ""
	}

	name := ns.pickCandidate(accepted, options.preference)
	if options.recordHistory {
		ns.history.add(name)
	}
	return name
}

// acceptable applies every active filter to one raw walk result. Banned
// words and the validator always apply; the training and history exclusions
// follow their flags.
func (ns *NameSet) acceptable(name string, options *nameOptions) bool {
	if name == "" {
		return false
	}
	if options.validate != nil && !options.validate(name) {
		return false
	}
	if options.excludeTraining && ns.counts[name] > 0 {
		return false
	}
	if options.excludeHistory && ns.history.has(name) {
		return false
	}
	return IsClean(name)
}

// pickCandidate chooses the winner among accepted candidates. Lower score
// wins; ties keep the earliest candidate. Unknown Preference values select
// like PreferAverage.
func (ns *NameSet) pickCandidate(candidates []string, pref Preference) string {
	if len(candidates) == 1 {
		return candidates[0]
	}
	mean := ns.MeanLength()
	score := func(name string) float64 {
		l := ns.lengthFn(name)
		switch pref {
		case PreferMin:
			return l
		case PreferMax:
			return -l
		default:
			// Relative error against the training mean, or absolute error
			// when the mean is zero.
			if mean == 0 {
				return math.Abs(l - mean)
			}
			return math.Abs(l-mean) / mean
		}
	}
	best := candidates[0]
	bestScore := score(best)
	for _, c := range candidates[1:] {
		if s := score(c); s < bestScore {
			best, bestScore = c, s
		}
	}
	return best
}
