package config

// FormatMatcherID formats a matcher identifier based on the given format.
// Falls back to ID if name is empty.
func FormatMatcherID(format MatcherFormat, id, name string) string {
	if name == "" {
		return id
	}

	switch format {
	case MatcherFormatID:
		return id
	case MatcherFormatCombined:
		return id + "/" + name
	default:
		return name
	}
}
