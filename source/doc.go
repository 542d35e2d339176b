// Package source opens the byte source digested for one path. Regular files
// are read as they are; directories follow a DirPolicy: either their regular
// files are concatenated in lexical walk order or they are rejected.
package source
