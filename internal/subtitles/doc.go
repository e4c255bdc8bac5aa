// Package subtitles holds the SRT data model and codec.
//
// Parse and Serialize convert between SRT text and Records; Document holds
// the authoritative record sequence for one loaded file. The package also
// owns the input boundary (file name checks, text decoding) and the naming of
// exported files.
package subtitles
