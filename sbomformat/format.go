// Package sbomformat identifies the SBOM document formats this module
// grades and translates between: SPDX 2.2, SPDX 2.3, CycloneDX 1.5, and
// CycloneDX 1.6.
package sbomformat

import "fmt"

// Format identifies one SBOM document format and spec version.
type Format int

const (
	Unknown Format = iota
	SPDX22
	SPDX23
	CDX15
	CDX16
)

var names = map[Format]string{
	SPDX22: "SPDX-2.2",
	SPDX23: "SPDX-2.3",
	CDX15:  "CycloneDX-1.5",
	CDX16:  "CycloneDX-1.6",
}

var byName = map[string]Format{
	"SPDX-2.2":      SPDX22,
	"SPDX-2.3":      SPDX23,
	"CycloneDX-1.5": CDX15,
	"CycloneDX-1.6": CDX16,
}

// String renders the canonical name used in cookbook and translation-map
// fixtures ("SPDX-2.3", "CycloneDX-1.6", ...).
func (f Format) String() string {
	if s, ok := names[f]; ok {
		return s
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so a Format round-trips
// through YAML/JSON fixtures as its canonical name rather than an int.
func (f Format) MarshalText() ([]byte, error) {
	if _, ok := names[f]; !ok {
		return nil, fmt.Errorf("sbomformat: cannot marshal unknown format %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, ok := byName[string(text)]
	if !ok {
		return fmt.Errorf("sbomformat: unrecognized format %q", text)
	}
	*f = parsed
	return nil
}

// IsSPDX reports whether f is one of the SPDX formats.
func (f Format) IsSPDX() bool { return f == SPDX22 || f == SPDX23 }

// IsCycloneDX reports whether f is one of the CycloneDX formats.
func (f Format) IsCycloneDX() bool { return f == CDX15 || f == CDX16 }

// Parse looks up a Format by its canonical name.
func Parse(s string) (Format, error) {
	f, ok := byName[s]
	if !ok {
		return Unknown, fmt.Errorf("sbomformat: unrecognized format %q", s)
	}
	return f, nil
}
