package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"overrides_file":    "",
		"show_progress":     true,
		"remove_non_custom": false,
		"preview":           "patch",
	}
}
