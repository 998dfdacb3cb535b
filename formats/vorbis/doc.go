// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding.
//
// This package uses github.com/jfreymuth/oggvorbis.
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("forest.ogg")
//	source, err := decoder.Decode(file)
//
// ReadSamples always returns whole interleaved frames, so a destination
// buffer shorter than one frame reads nothing.
package vorbis
