package model

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// Next cycles light -> dark -> system -> light.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

// Effective resolves system to the host preference.
func (t Theme) Effective(systemDark bool) Theme {
	if t == ThemeLight || t == ThemeDark {
		return t
	}
	if systemDark {
		return ThemeDark
	}
	return ThemeLight
}
