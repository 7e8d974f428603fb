package model

type NoteTemplate struct {
	Type    Template `json:"type"`
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Icon    string   `json:"icon"`
}

var defaultTemplates = map[Template]NoteTemplate{
	TemplatePlain: {
		Type:    TemplatePlain,
		Name:    "Plain Note",
		Content: "",
		Icon:    "📝",
	},
	TemplateCode: {
		Type:    TemplateCode,
		Name:    "Code Note",
		Content: "```javascript\n// Your code here\n```",
		Icon:    "💻",
	},
	TemplateChecklist: {
		Type:    TemplateChecklist,
		Name:    "Checklist Note",
		Content: "- [ ] First task\n- [ ] Second task\n- [ ] Third task",
		Icon:    "✅",
	},
}

func (t Template) Valid() bool {
	_, ok := defaultTemplates[t]
	return ok
}

// LookupTemplate returns the defaults for t, falling back to plain.
func LookupTemplate(t Template) NoteTemplate {
	if tpl, ok := defaultTemplates[t]; ok {
		return tpl
	}
	return defaultTemplates[TemplatePlain]
}

func Templates() []NoteTemplate {
	return []NoteTemplate{
		defaultTemplates[TemplatePlain],
		defaultTemplates[TemplateCode],
		defaultTemplates[TemplateChecklist],
	}
}
