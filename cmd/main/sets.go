package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/akerfield/namewright/pkg/corpus"
	"github.com/akerfield/namewright/pkg/namegen"
)

var (
	// ErrSetNotFound is returned when a named generation set does not exist.
	ErrSetNotFound = errors.New("generation set not found")
	// ErrSetExists is returned when creating a set under a taken name.
	ErrSetExists = errors.New("generation set already exists")
	// ErrUnknownLengthMetric is returned for a length metric other than
	// "runes" or "syllables".
	ErrUnknownLengthMetric = errors.New("unknown length metric")
	// ErrUnknownPreference is returned for a preference other than "avg",
	// "min" or "max".
	ErrUnknownPreference = errors.New("unknown preference")
)

// SetOptions records how a generation set is built from its corpus.
type SetOptions struct {
	Corpus       string `json:"corpus"`
	Order        int    `json:"order,omitempty"`
	LengthMetric string `json:"length_metric,omitempty"`
}

// SetInfo is the listing entry for one generation set.
type SetInfo struct {
	Name    string           `json:"name"`
	Options SetOptions       `json:"options"`
	Stats   namegen.SetStats `json:"stats"`
}

// GenerateParams is the request shape for one generation call. Pointer
// fields distinguish "unset" from an explicit false.
type GenerateParams struct {
	Count           int    `json:"count"`
	Candidates      int    `json:"candidates"`
	Preference      string `json:"preference"`
	MaxAttempts     int    `json:"max_attempts"`
	ExcludeTraining *bool  `json:"exclude_training"`
	ExcludeHistory  *bool  `json:"exclude_history"`
	RecordHistory   *bool  `json:"record_history"`
}

// GenerateResult reports the generated names and how many requested names
// could not be produced before the attempt budget ran out.
type GenerateResult struct {
	Names     []string `json:"names"`
	Exhausted int      `json:"exhausted"`
}

// StressReport summarizes a capacity probe: how many names a set produced
// under training and history exclusion before exhausting, measured on a
// throwaway copy so the live history is untouched.
type StressReport struct {
	TrainingNames int     `json:"training_names"`
	Generated     int     `json:"generated"`
	PerTraining   float64 `json:"per_training"`
	Limited       bool    `json:"limited"`
}

// managedSet pairs a NameSet with its build options and a mutex that
// serializes operations against it.
type managedSet struct {
	mu   sync.Mutex
	opts SetOptions
	set  *namegen.NameSet
}

// SetManager owns the named generation sets the server exposes. Lookup goes
// through the manager lock; work against one set holds that set's own lock,
// so distinct sets generate concurrently while linked histories stay
// consistent.
type SetManager struct {
	mu       sync.RWMutex
	store    *corpus.Store
	sets     map[string]*managedSet
	defaults GenerationConfig
	logger   *slog.Logger
}

// NewSetManager creates a SetManager over the given store.
func NewSetManager(store *corpus.Store, defaults *GenerationConfig, logger *slog.Logger) *SetManager {
	return &SetManager{
		store:    store,
		sets:     make(map[string]*managedSet),
		defaults: *defaults,
		logger:   logger,
	}
}

// lengthFuncFor maps a metric name to its LengthFunc. An empty metric means
// the configured default.
func (sm *SetManager) lengthFuncFor(metric string) (namegen.LengthFunc, error) {
	if metric == "" {
		metric = sm.defaults.LengthMetric
	}
	switch metric {
	case "", "runes":
		return namegen.RuneCount, nil
	case "syllables":
		return namegen.Syllables, nil
	default:
		return nil, fmt.Errorf("%q: %w", metric, ErrUnknownLengthMetric)
	}
}

// preferenceFor maps a preference name to its Preference value.
func preferenceFor(name string) (namegen.Preference, error) {
	switch name {
	case "", "avg", "average":
		return namegen.PreferAverage, nil
	case "min":
		return namegen.PreferMin, nil
	case "max":
		return namegen.PreferMax, nil
	default:
		return namegen.PreferAverage, fmt.Errorf("%q: %w", name, ErrUnknownPreference)
	}
}

// Create builds a new generation set from a stored corpus.
func (sm *SetManager) Create(ctx context.Context, name string, opts SetOptions) error {
	if opts.Order == 0 {
		opts.Order = sm.defaults.Order
	}
	lengthFn, err := sm.lengthFuncFor(opts.LengthMetric)
	if err != nil {
		return err
	}

	names, err := sm.store.Get(ctx, opts.Corpus)
	if err != nil {
		return err
	}
	set, err := namegen.New(names, opts.Order, lengthFn)
	if err != nil {
		return fmt.Errorf("failed to build set %q from corpus %q: %w", name, opts.Corpus, err)
	}
	set.SetLogger(sm.logger)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, taken := sm.sets[name]; taken {
		return fmt.Errorf("set %q: %w", name, ErrSetExists)
	}
	sm.sets[name] = &managedSet{opts: opts, set: set}
	sm.logger.Info("Generation set created",
		slog.String("set", name),
		slog.String("corpus", opts.Corpus),
		slog.Int("order", opts.Order),
	)
	return nil
}

// Delete removes a generation set. Its history disappears with it; linked
// sets keep the shared instance.
func (sm *SetManager) Delete(name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sets[name]; !ok {
		return fmt.Errorf("set %q: %w", name, ErrSetNotFound)
	}
	delete(sm.sets, name)
	sm.logger.Info("Generation set deleted", slog.String("set", name))
	return nil
}

// get resolves a set by name under the read lock.
func (sm *SetManager) get(name string) (*managedSet, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	ms, ok := sm.sets[name]
	if !ok {
		return nil, fmt.Errorf("set %q: %w", name, ErrSetNotFound)
	}
	return ms, nil
}

// List returns every set with its options and current stats, sorted by
// name.
func (sm *SetManager) List() []SetInfo {
	sm.mu.RLock()
	names := make([]string, 0, len(sm.sets))
	for name := range sm.sets {
		names = append(names, name)
	}
	sm.mu.RUnlock()
	sort.Strings(names)

	infos := make([]SetInfo, 0, len(names))
	for _, name := range names {
		ms, err := sm.get(name)
		if err != nil {
			continue // deleted while listing
		}
		ms.mu.Lock()
		infos = append(infos, SetInfo{Name: name, Options: ms.opts, Stats: ms.set.Stats()})
		ms.mu.Unlock()
	}
	return infos
}

// Generate produces params.Count names from one set, serialized against
// other operations on that set.
func (sm *SetManager) Generate(name string, params GenerateParams) (*GenerateResult, error) {
	ms, err := sm.get(name)
	if err != nil {
		return nil, err
	}

	pref, err := preferenceFor(params.Preference)
	if err != nil {
		return nil, err
	}
	count := params.Count
	if count <= 0 {
		count = 1
	}
	candidates := params.Candidates
	if candidates <= 0 {
		candidates = sm.defaults.Candidates
	}
	maxAttempts := params.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = sm.defaults.MaxAttempts
	}
	opts := []namegen.NameOption{
		namegen.WithCandidates(candidates),
		namegen.WithPreference(pref),
		namegen.WithMaxAttempts(maxAttempts),
	}
	if params.ExcludeTraining != nil {
		opts = append(opts, namegen.WithTrainingExclusion(*params.ExcludeTraining))
	}
	if params.ExcludeHistory != nil {
		opts = append(opts, namegen.WithHistoryExclusion(*params.ExcludeHistory))
	}
	if params.RecordHistory != nil {
		opts = append(opts, namegen.WithHistoryRecording(*params.RecordHistory))
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	result := &GenerateResult{Names: make([]string, 0, count)}
	for i := 0; i < count; i++ {
		n := ms.set.MakeName(opts...)
		if n == "" {
			result.Exhausted++
			continue
		}
		result.Names = append(result.Names, n)
	}
	return result, nil
}

// History returns a sorted snapshot of one set's history.
func (sm *SetManager) History(name string) ([]string, error) {
	ms, err := sm.get(name)
	if err != nil {
		return nil, err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.set.History(), nil
}

// AddHistory inserts names into one set's history.
func (sm *SetManager) AddHistory(name string, names []string) error {
	ms, err := sm.get(name)
	if err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.set.AddToHistory(names...)
	return nil
}

// ClearHistory empties one set's history, including for its linked peers.
func (sm *SetManager) ClearHistory(name string) error {
	ms, err := sm.get(name)
	if err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.set.ClearHistory()
	return nil
}

// Link merges the histories of the named sets into one shared instance.
// The manager lock is held for the whole operation so no set generates
// mid-link.
func (sm *SetManager) Link(names []string) error {
	if len(names) < 2 {
		return errors.New("linking needs at least two sets")
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	members := make([]*managedSet, 0, len(names))
	for _, name := range names {
		ms, ok := sm.sets[name]
		if !ok {
			return fmt.Errorf("set %q: %w", name, ErrSetNotFound)
		}
		members = append(members, ms)
	}
	for _, ms := range members {
		ms.mu.Lock()
	}
	defer func() {
		for _, ms := range members {
			ms.mu.Unlock()
		}
	}()

	rest := make([]*namegen.NameSet, 0, len(members)-1)
	for _, ms := range members[1:] {
		rest = append(rest, ms.set)
	}
	members[0].set.LinkHistories(rest...)
	sm.logger.Info("Set histories linked", slog.Any("sets", names))
	return nil
}

// Unlink detaches one set from its shared history, leaving it a private
// copy.
func (sm *SetManager) Unlink(name string) error {
	ms, err := sm.get(name)
	if err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.set.UnlinkHistory()
	sm.logger.Info("Set history unlinked", slog.String("set", name))
	return nil
}

// Stress probes how many names a set can produce before exhausting, using
// a private copy so the live history and linkage are untouched. A limit of
// 0 or less falls back to 10000.
func (sm *SetManager) Stress(name string, limit int) (*StressReport, error) {
	ms, err := sm.get(name)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10000
	}

	ms.mu.Lock()
	probe := ms.set.Copy()
	ms.mu.Unlock()
	probe.ClearHistory()

	report := &StressReport{TrainingNames: probe.Len()}
	for report.Generated < limit {
		if probe.MakeName() == "" {
			break
		}
		report.Generated++
	}
	report.Limited = report.Generated >= limit
	if report.TrainingNames > 0 {
		report.PerTraining = float64(report.Generated) / float64(report.TrainingNames)
	}
	return report, nil
}

// Refresh rebuilds every set from its stored corpus, preserving each set's
// history and linkage by swapping the training data in place.
func (sm *SetManager) Refresh(ctx context.Context) error {
	sm.mu.RLock()
	names := make([]string, 0, len(sm.sets))
	for name := range sm.sets {
		names = append(names, name)
	}
	sm.mu.RUnlock()

	for _, name := range names {
		ms, err := sm.get(name)
		if err != nil {
			continue
		}
		fresh, err := sm.store.Get(ctx, ms.opts.Corpus)
		if err != nil {
			return fmt.Errorf("failed to refresh set %q: %w", name, err)
		}
		ms.mu.Lock()
		ms.set.SubtractInPlace(namegen.NameList(ms.set.Names()))
		ms.set.CombineInPlace(namegen.NameList(fresh))
		ms.mu.Unlock()
		sm.logger.Info("Generation set refreshed",
			slog.String("set", name),
			slog.Int("names", len(fresh)),
		)
	}
	return nil
}
