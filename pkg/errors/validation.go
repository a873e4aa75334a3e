package errors

import (
	"strings"
	"unicode"
)

// maxPrefixLength bounds the output file name prefix.
const maxPrefixLength = 64

// ValidatePrefix validates the prefix prepended to output file names.
// The prefix becomes part of a base name, so it must not smuggle in
// directories or control characters. An empty prefix is rejected because it
// would overwrite the input when the output directory equals the input's.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidPrefix, "output prefix cannot be empty")
	}
	if len(prefix) > maxPrefixLength {
		return New(ErrCodeInvalidPrefix, "output prefix too long (max %d characters)", maxPrefixLength)
	}
	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPrefix, "output prefix contains invalid control characters")
		}
	}
	if strings.ContainsAny(prefix, `/\`) {
		return New(ErrCodeInvalidPrefix, "output prefix cannot contain path separators")
	}
	if strings.Contains(prefix, "..") {
		return New(ErrCodeInvalidPrefix, "output prefix cannot contain path traversal sequences (..)")
	}
	return nil
}

// ValidateInputPath performs cheap syntactic checks on an input image path
// before any file system access.
func ValidateInputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "input path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "input path contains a null byte")
	}
	return nil
}
