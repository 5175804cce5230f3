package umbf

import "fmt"

// Validate reports header fields that do not fit their declared wire
// widths. Packing masks such fields silently for compatibility with
// existing writers; this is the audit hook for tooling that wants to
// surface the truncation instead.
func (h Header) Validate() []string {
	var findings []string
	if h.VendorSign > 0xFFFFFF {
		findings = append(findings, fmt.Sprintf("vendor signature 0x%X exceeds 24 bits and will be masked", h.VendorSign))
	}
	if h.VendorVersion > 0xFFFFFF {
		findings = append(findings, fmt.Sprintf("vendor version 0x%X exceeds 24 bits and will be masked", h.VendorVersion))
	}
	if h.SpecVersion > 0xFFFFFF {
		findings = append(findings, fmt.Sprintf("spec version 0x%X exceeds 24 bits and will be masked", h.SpecVersion))
	}
	return findings
}

// Validate checks the container's structural conventions: header field
// widths, and that the first block's signature family matches the
// header's type signature for the built-in formats. Violations are
// returned as human-readable findings; an empty result means clean.
func (f *File) Validate() []string {
	findings := f.Header.Validate()
	if len(f.Blocks) == 0 {
		findings = append(findings, "container holds no blocks")
		return findings
	}
	want, known := formatBlockSig(f.Header.TypeSign)
	if known && f.Blocks[0].Signature() != want {
		findings = append(findings, fmt.Sprintf(
			"first block %s does not identify the header type 0x%04X",
			sigString(f.Blocks[0].Signature()), f.Header.TypeSign))
	}
	return findings
}

// formatBlockSig maps a header format signature to the block signature
// expected at Blocks[0].
func formatBlockSig(typeSign uint16) (uint32, bool) {
	switch typeSign {
	case FormatImage:
		return SigImage2D, true
	case FormatScene:
		return SigScene, true
	case FormatMaterial:
		return SigMaterial, true
	case FormatTarget:
		return SigTarget, true
	case FormatLibrary:
		return SigLibrary, true
	default:
		return 0, false
	}
}
