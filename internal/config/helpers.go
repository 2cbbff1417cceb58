package config

func stringPtr(s string) *string { return &s }
func intPtr(n int) *int          { return &n }
func boolPtr(b bool) *bool       { return &b }

func autosquashPtr(m AutosquashMode) *AutosquashMode {
	return &m
}
