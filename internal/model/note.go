package model

type Template string

const (
	TemplatePlain     Template = "plain"
	TemplateCode      Template = "code"
	TemplateChecklist Template = "checklist"
)

const DefaultNoteColor = "#ffffff"

type Note struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Color      string   `json:"color"`
	Icon       string   `json:"icon"`
	LastEdited int64    `json:"lastEdited"`
	Template   Template `json:"template"`
	Image      string   `json:"image,omitempty"`
}

// NotePatch carries a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Color   *string `json:"color,omitempty"`
	Icon    *string `json:"icon,omitempty"`
	Image   *string `json:"image,omitempty"`
}

func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Color == nil && p.Icon == nil && p.Image == nil
}

// Apply copies the set fields onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.Icon != nil {
		n.Icon = *p.Icon
	}
	if p.Image != nil {
		n.Image = *p.Image
	}
}

func CloneNotes(notes []Note) []Note {
	if notes == nil {
		return nil
	}
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}
