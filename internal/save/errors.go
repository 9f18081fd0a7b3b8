// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package save

import "github.com/samber/oops"

// Kind classifies persistence failures.
type Kind string

// Persistence error codes.
const (
	KindSerialization  Kind = "SAVE_SERIALIZATION"
	KindIO             Kind = "SAVE_IO"
	KindNoFileSelected Kind = "SAVE_NO_FILE_SELECTED"
)

// KindOf returns the persistence kind of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return "", false
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "", false
	}
	code, ok := oopsErr.Code().(string)
	if !ok {
		return "", false
	}
	switch k := Kind(code); k {
	case KindSerialization, KindIO, KindNoFileSelected:
		return k, true
	default:
		return "", false
	}
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

func errNoFileSelected() error {
	return oops.Code(string(KindNoFileSelected)).Errorf("no file selected")
}

func serializationErr(path string) oops.OopsErrorBuilder {
	return oops.Code(string(KindSerialization)).With("path", path)
}

func ioErr(path string) oops.OopsErrorBuilder {
	return oops.Code(string(KindIO)).With("path", path)
}
