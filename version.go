package fretwise

// Version is the release of the fretwise library and binaries.
const Version = "0.3.0"
