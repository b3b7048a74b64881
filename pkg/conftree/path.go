package conftree

import "strings"

// Path is a slash-delimited address into the device configuration tree,
// e.g. "config/slb/virtualServers/svc1/serviceHttp". Paths are immutable;
// derivation always produces a new value.
type Path string

// Child returns the path extended by one segment.
func (p Path) Child(segment string) Path {
	if p == "" {
		return Path(segment)
	}
	return p + Path("/"+segment)
}

// Base returns the final segment of the path, or "" for the empty path.
func (p Path) Base() string {
	s := string(p)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Parent returns the path with the final segment removed.
// The parent of a single-segment path is the empty path.
func (p Path) Parent() Path {
	s := string(p)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return Path(s[:i])
	}
	return ""
}

// Segments splits the path into its individual segments.
func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), "/")
}

func (p Path) String() string {
	return string(p)
}
