// Package merge folds an incoming batch of notes into a note sequence.
// Both entry points are pure: they never mutate their inputs and never
// touch storage.
package merge

import "github.com/xxxsen/jotty/internal/model"

// DetectConflicts returns one Conflict per batch record whose id already
// exists in store, in batch order.
func DetectConflicts(store, batch []model.Note) []model.Conflict {
	if len(batch) == 0 || len(store) == 0 {
		return nil
	}
	existing := indexByID(store)
	var conflicts []model.Conflict
	for _, incoming := range batch {
		if pos, ok := existing[incoming.ID]; ok {
			conflicts = append(conflicts, model.Conflict{
				Incoming: incoming,
				Existing: store[pos],
			})
		}
	}
	return conflicts
}

func indexByID(notes []model.Note) map[string]int {
	index := make(map[string]int, len(notes))
	for i, note := range notes {
		if _, ok := index[note.ID]; !ok {
			index[note.ID] = i
		}
	}
	return index
}
