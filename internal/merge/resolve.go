package merge

import "github.com/xxxsen/jotty/internal/model"

// IDGenerator yields fresh note ids for saveAsNew.
type IDGenerator func() string

// Merge folds batch into store and reports what happened to every record.
//
// A nil resolutions slice selects the no-conflict path: new ids are
// prepended as one block in batch order and colliding ids are skipped.
// A non-nil slice, even empty, selects the resolved path where each
// colliding id follows its resolution (skip when none is given) and each
// new record is pushed to the front individually.
//
// Collisions are always checked against the original store, so records
// repeating an id within the batch never collide with each other. Each
// copy is handled on its own; repeated overwrites leave the last copy.
func Merge(store, batch []model.Note, resolutions []model.Resolution, newID IDGenerator) ([]model.Note, model.ImportResult) {
	if resolutions == nil {
		return mergeFresh(store, batch)
	}
	return mergeResolved(store, batch, model.NewResolutionSet(resolutions), newID)
}

func mergeFresh(store, batch []model.Note) ([]model.Note, model.ImportResult) {
	existing := indexByID(store)
	fresh := make([]model.Note, 0, len(batch))
	var result model.ImportResult
	for _, note := range batch {
		if _, ok := existing[note.ID]; ok {
			result.Skipped++
			continue
		}
		fresh = append(fresh, note)
		result.Imported++
	}
	out := make([]model.Note, 0, len(fresh)+len(store))
	out = append(out, fresh...)
	out = append(out, store...)
	return out, result
}

func mergeResolved(store, batch []model.Note, resolutions model.ResolutionSet, newID IDGenerator) ([]model.Note, model.ImportResult) {
	existing := indexByID(store)

	// front collects inserts newest-first; body is a copy of the store so
	// overwrites never reach the caller's slice.
	var front []model.Note
	body := model.CloneNotes(store)
	var result model.ImportResult
	for _, note := range batch {
		pos, collides := existing[note.ID]
		if !collides {
			front = append(front, note)
			result.Imported++
			continue
		}
		switch resolutions.Action(note.ID) {
		case model.ActionOverwrite:
			body[pos] = note
			result.Overwritten++
		case model.ActionSaveAsNew:
			copied := note
			copied.ID = newID()
			front = append(front, copied)
			result.Imported++
		default:
			result.Skipped++
		}
	}

	out := make([]model.Note, 0, len(front)+len(body))
	for i := len(front) - 1; i >= 0; i-- {
		out = append(out, front[i])
	}
	out = append(out, body...)
	return out, result
}
