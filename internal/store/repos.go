package store

import (
	"opostudy/internal/mistakes"
	"opostudy/internal/stats"
)

// Document keys. The version suffix allows a future format migration to
// start fresh without clobbering the old document.
const (
	KeyStats      = "stats_v1"
	KeyMistakes   = "mistakes_v1"
	KeyPracticals = "practicals_progress_v1"
)

// StatsRepo returns a stats.Repo backed by this store.
func (s *Store) StatsRepo() stats.Repo {
	return &statsRepo{store: s}
}

type statsRepo struct {
	store *Store
}

func (r *statsRepo) Load() stats.Snapshot {
	return loadDocument(r.store, KeyStats, stats.Snapshot{})
}

func (r *statsRepo) Save(snap stats.Snapshot) error {
	return saveDocument(r.store, KeyStats, snap)
}

// MistakesRepo returns a mistakes.Repo backed by this store.
func (s *Store) MistakesRepo() mistakes.Repo {
	return &mistakesRepo{store: s}
}

type mistakesRepo struct {
	store *Store
}

func (r *mistakesRepo) Load() []mistakes.Record {
	return loadDocument(r.store, KeyMistakes, []mistakes.Record(nil))
}

func (r *mistakesRepo) Save(records []mistakes.Record) error {
	if records == nil {
		records = []mistakes.Record{}
	}
	return saveDocument(r.store, KeyMistakes, records)
}

// PracticalAnswer is a saved free-form answer to a practical exercise.
type PracticalAnswer struct {
	Answer    string `json:"answer"`
	UpdatedAt string `json:"updated_at"`
}

// PracticalAnswers loads the saved answers keyed by practical ID.
func (s *Store) PracticalAnswers() map[string]PracticalAnswer {
	return loadDocument(s, KeyPracticals, map[string]PracticalAnswer{})
}

// SavePracticalAnswers persists the full answer map.
func (s *Store) SavePracticalAnswers(answers map[string]PracticalAnswer) error {
	if answers == nil {
		answers = map[string]PracticalAnswer{}
	}
	return saveDocument(s, KeyPracticals, answers)
}
