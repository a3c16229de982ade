package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// NanoidSize is the length of every primary key in the schema.
const NanoidSize = 32

const nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NanoID returns a new random identifier suitable for a primary key.
func NanoID() string {
	return NanoIDSize(NanoidSize)
}

// NanoIDSize returns a random identifier of the given length. A size
// of zero or less falls back to NanoidSize.
func NanoIDSize(size int) string {
	if size <= 0 {
		size = NanoidSize
	}
	return gonanoid.MustGenerate(nanoidAlphabet, size)
}
