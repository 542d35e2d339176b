package source

import (
	"fmt"
	"strings"
)

// DirPolicy selects how a directory target is turned into
// a byte source.
type DirPolicy int

const (
	// DirContent reads every regular file below the
	// directory, in lexical order, as one stream. An empty
	// directory is empty content.
	DirContent DirPolicy = iota

	// DirReject fails with ErrIsDirectory.
	DirReject
)

var policyNames = map[DirPolicy]string{
	DirContent: "content",
	DirReject:  "reject",
}

// ParseDirPolicy parses "content" or "reject".
func ParseDirPolicy(s string) (DirPolicy, error) {
	for pol, name := range policyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return pol, nil
		}
	}

	return DirContent, fmt.Errorf(
		"parsing directory policy: unrecognized value %q"+
			" (want content or reject)",
		s,
	)
}

// String implements fmt.Stringer and pflag.Value.
func (p DirPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}

	return fmt.Sprintf("DirPolicy(%d)", int(p))
}

// Set implements pflag.Value.
func (p *DirPolicy) Set(s string) error {
	pol, err := ParseDirPolicy(s)
	if err != nil {
		return err
	}

	*p = pol

	return nil
}

// Type implements pflag.Value.
func (*DirPolicy) Type() string {
	return "policy"
}
