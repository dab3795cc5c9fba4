package constants

import "strings"

// ResumeExtension is the only document type the intake form accepts.
const ResumeExtension = "pdf"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsResumeFilename reports whether the filename carries the accepted
// resume extension, case-insensitively.
func IsResumeFilename(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	return NormalizeExt(name[i:]) == ResumeExtension
}
