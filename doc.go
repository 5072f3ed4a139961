// Package vorbis provides a pure Go implementation of the Vorbis header and
// codebook layer: parsing and packing the three header packets, deriving
// runtime Huffman codebooks, and splicing the codebook section of a setup
// header without reparsing the rest of it.
//
// # Basic Usage
//
// To parse the headers of a stream:
//
//	ident, err := vorbis.ParseIdent(packets[0])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	setup, err := vorbis.ParseSetup(packets[2], ident)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Derive the runtime codebooks once per session.
//	s, err := vorbis.NewSession(setup, vorbis.ModeDecode)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	entries, err := s.DecodeEntries(0, payload, 16)
//
// # Codebook Surgery
//
// Setup headers are dominated by their codebooks. StripCodebooks removes
// the codebook section so it can be stored or shipped once, and
// RestoreCodebooks puts it back bit for bit. ReplaceCodebooks swaps the
// section for another one, for example one built from a YAML preset with
// PackTemplate.
//
// # Errors
//
// Errors returned by this package match the sentinels of its internal
// packages with errors.Is. Code maps any of them to the Error code the
// reference codec would report.
//
// # Thread Safety
//
// A Session is read-only once built and may be shared between goroutines.
// Parsing and packing functions keep no state.
//
// # Reference
//
// Wire format and algorithms follow libvorbis: https://gitlab.xiph.org/xiph/vorbis
package vorbis
