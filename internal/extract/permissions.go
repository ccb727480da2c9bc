package extract

import (
	"regexp"
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
)

// Permissions carries the copyright/license fields spec.md §4.6
// "Permissions & License" describes.
type Permissions struct {
	CopyrightStatement string
	CopyrightYear      string
	LicenseType        string
	LicenseText        string
}

var licenseURLPattern = regexp.MustCompile(`https?://(?:creativecommons\.org|creativecommons\.net)/licenses/([a-z-]+)`)

// ExtractPermissions reads the article's <permissions> block, deriving
// LicenseType from the license-type attribute when present, or else
// from the first embedded Creative Commons URL pattern.
func ExtractPermissions(root *jats.Node) Permissions {
	p := Permissions{}
	perm := root.Find("permissions")
	if perm == nil {
		return p
	}
	p.CopyrightStatement = findText(perm, "copyright-statement")
	p.CopyrightYear = findText(perm, "copyright-year")

	lic := perm.Find("license")
	if lic == nil {
		return p
	}
	p.LicenseText = strings.TrimSpace(jats.CleanText(lic))
	p.LicenseType = lic.Attr("license-type")
	if p.LicenseType == "" {
		for _, ext := range lic.FindAll("ext-link") {
			if m := licenseURLPattern.FindStringSubmatch(ext.Attr("href")); m != nil {
				p.LicenseType = m[1]
				break
			}
		}
	}
	return p
}
