package jats

import (
	"bytes"

	"github.com/rs/zerolog"
)

// SupportedDTDURLs mirrors the original Python implementation's allowlist
// of PMC article-set DTDs (pmcgrab.constants.SUPPORTED_DTD_URLS).
var SupportedDTDURLs = []string{
	"https://dtd.nlm.nih.gov/ncbi/pmc/articleset/nlm-articleset-2.0.dtd",
}

// ValidateDTD is an advisory pass over the raw XML bytes' DOCTYPE
// declaration. Per spec.md §4.5 and §7, and the redesign in SPEC_FULL.md
// §5/§6, DTD validation never blocks extraction: a missing or
// unrecognized DTD only produces a warning log line. DTD validation
// against the referenced external DTD file itself (schema-level
// validation) is left to an externally supplied DTD file, since no DTD
// generation happens in this module (spec.md §1 Non-goals); here we only
// check that the declared DOCTYPE, if any, references a known-supported
// PMC DTD URL.
func ValidateDTD(raw []byte, log zerolog.Logger) {
	doctype := extractDoctype(raw)
	if doctype == nil {
		log.Warn().Msg("no DOCTYPE declared; skipping DTD validation (advisory)")
		return
	}
	url := extractDTDURL(doctype)
	if url == "" {
		log.Warn().Msg("DOCTYPE present but no DTD URL found; skipping DTD validation (advisory)")
		return
	}
	for _, supported := range SupportedDTDURLs {
		if url == supported {
			return
		}
	}
	log.Warn().Str("dtd_url", url).Msg("unsupported DTD URL; proceeding without validation (advisory)")
}

func extractDoctype(raw []byte) []byte {
	start := bytes.Index(raw, []byte("<!DOCTYPE"))
	if start < 0 {
		return nil
	}
	end := bytes.IndexByte(raw[start:], '>')
	if end < 0 {
		return raw[start:]
	}
	return raw[start : start+end+1]
}

func extractDTDURL(doctype []byte) string {
	start := bytes.IndexByte(doctype, '"')
	if start < 0 {
		return ""
	}
	rest := doctype[start+1:]
	end := bytes.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	return string(rest[:end])
}
