package model

import "strings"

// Conflict pairs an incoming note with the stored note sharing its id.
type Conflict struct {
	Incoming Note `json:"incoming"`
	Existing Note `json:"existing"`
}

type ResolutionAction string

const (
	ActionOverwrite ResolutionAction = "overwrite"
	ActionSaveAsNew ResolutionAction = "saveAsNew"
	ActionSkip      ResolutionAction = "skip"
)

// ParseResolutionAction accepts the wire names case-insensitively, plus the
// kebab/snake spellings used on the command line.
func ParseResolutionAction(s string) (ResolutionAction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overwrite":
		return ActionOverwrite, true
	case "saveasnew", "save-as-new", "save_as_new", "new":
		return ActionSaveAsNew, true
	case "skip":
		return ActionSkip, true
	}
	return "", false
}

type Resolution struct {
	NoteID string           `json:"noteId"`
	Action ResolutionAction `json:"action"`
}

// ResolutionSet indexes resolutions by incoming note id.
type ResolutionSet map[string]ResolutionAction

func NewResolutionSet(resolutions []Resolution) ResolutionSet {
	set := make(ResolutionSet, len(resolutions))
	for _, r := range resolutions {
		set[r.NoteID] = r.Action
	}
	return set
}

// Action returns the chosen action for id. Missing or unknown actions
// resolve to ActionSkip.
func (s ResolutionSet) Action(id string) ResolutionAction {
	switch action := s[id]; action {
	case ActionOverwrite, ActionSaveAsNew:
		return action
	default:
		return ActionSkip
	}
}

type ImportResult struct {
	Imported    int `json:"imported"`
	Overwritten int `json:"overwritten"`
	Skipped     int `json:"skipped"`
}

func (r ImportResult) Total() int {
	return r.Imported + r.Overwritten + r.Skipped
}

func (r ImportResult) Changed() bool {
	return r.Imported > 0 || r.Overwritten > 0
}
