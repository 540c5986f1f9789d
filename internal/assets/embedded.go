package assets

import "embed"

//go:embed images/*
var images embed.FS

// EmbeddedDir is the directory of the built-in image set inside the embedded FS.
const EmbeddedDir = "images"

// EmbeddedSource returns the image set compiled into the binary.
func EmbeddedSource() Source {
	return Source{FS: images, Dir: EmbeddedDir, Name: "embedded"}
}
