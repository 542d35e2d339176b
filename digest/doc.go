// Package digest is the digest provider used by the chksum engine. It keeps
// a registry of named hash algorithms (MD5, SHA-1, the SHA-2 and SHA-3
// families and XXH3) and computes a Digest from any io.Reader in a single
// synchronous call.
package digest
