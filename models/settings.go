package models

// Description sources.
const (
	DescSourceShort = "short"
	DescSourceLong  = "long"
)

// Settings maps the three export axes to catalog attribute keys and controls
// how description text is assembled.
type Settings struct {
	AttrType   string `json:"attr_type"`
	AttrColor  string `json:"attr_color"`
	AttrSize   string `json:"attr_size"`
	DescSource string `json:"desc_source"`
	JoinSep    string `json:"join_sep"`
}

// DefaultSettings returns the settings used when nothing has been stored.
func DefaultSettings() Settings {
	return Settings{
		AttrType:   "pa_termektipus",
		AttrColor:  "pa_szin",
		AttrSize:   "pa_meret",
		DescSource: DescSourceShort,
		JoinSep:    " | ",
	}
}

// SettingsFromMap merges stored key/value pairs over the defaults. Legacy keys
// written by older releases are honored when the current key is missing.
func SettingsFromMap(stored map[string]string) Settings {
	s := DefaultSettings()
	if stored == nil {
		return s
	}

	pick := func(key, legacy string) (string, bool) {
		if v, ok := stored[key]; ok {
			return v, true
		}
		if legacy != "" {
			if v, ok := stored[legacy]; ok {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := pick("attr_type", "attr_termektipus"); ok {
		s.AttrType = v
	}
	if v, ok := pick("attr_color", "attr_szin"); ok {
		s.AttrColor = v
	}
	if v, ok := pick("attr_size", "attr_meret"); ok {
		s.AttrSize = v
	}
	if v, ok := pick("desc_source", ""); ok {
		s.DescSource = v
	}
	if v, ok := pick("join_sep", "concat_sep"); ok {
		s.JoinSep = v
	}
	return s
}

// ToMap returns the settings in their persisted key/value form.
func (s Settings) ToMap() map[string]string {
	return map[string]string{
		"attr_type":   s.AttrType,
		"attr_color":  s.AttrColor,
		"attr_size":   s.AttrSize,
		"desc_source": s.DescSource,
		"join_sep":    s.JoinSep,
	}
}
