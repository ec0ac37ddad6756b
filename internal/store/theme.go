package store

import "fmt"

// ColorScheme is the site theme preference.
type ColorScheme string

const (
	SchemeLight ColorScheme = "light"
	SchemeDark  ColorScheme = "dark"
	// SchemeAuto follows the reader's system preference. The value doubles
	// as the CSS color-scheme keyword.
	SchemeAuto ColorScheme = "light dark"
)

const colorSchemeKey = "colorScheme"

// ParseColorScheme accepts the stored values plus "auto"/"automatic".
func ParseColorScheme(s string) (ColorScheme, error) {
	switch s {
	case "light":
		return SchemeLight, nil
	case "dark":
		return SchemeDark, nil
	case "light dark", "auto", "automatic", "":
		return SchemeAuto, nil
	}
	return "", fmt.Errorf("unknown color scheme %q (want light, dark or auto)", s)
}

// Label is the switcher option text.
func (c ColorScheme) Label() string {
	switch c {
	case SchemeLight:
		return "Light"
	case SchemeDark:
		return "Dark"
	default:
		return "Automatic"
	}
}

// Schemes lists the switcher options in display order.
func Schemes() []ColorScheme {
	return []ColorScheme{SchemeAuto, SchemeLight, SchemeDark}
}

// ColorScheme returns the saved theme, defaulting to automatic.
func (d *DB) ColorScheme() (ColorScheme, error) {
	v, ok, err := d.Get(colorSchemeKey)
	if err != nil {
		return SchemeAuto, fmt.Errorf("read color scheme: %w", err)
	}
	if !ok {
		return SchemeAuto, nil
	}
	c, err := ParseColorScheme(v)
	if err != nil {
		return SchemeAuto, nil
	}
	return c, nil
}

func (d *DB) SetColorScheme(c ColorScheme) error {
	if err := d.Set(colorSchemeKey, string(c)); err != nil {
		return fmt.Errorf("save color scheme: %w", err)
	}
	return nil
}
