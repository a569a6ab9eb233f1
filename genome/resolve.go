package genome

import (
	"log"
)

// Resolution is the outcome of matching one alignment file to a reference
// genome and variant catalog.
type Resolution struct {
	Build     string // empty when the reference was supplied explicitly
	Reference string
	Catalog   string // empty when the build falls outside all catalog groups
}

// Resolve determines the reference genome and variant catalog for file.
// fingerprint is only called when no explicit reference is given, so callers
// can defer the header read behind it. An explicit reference is taken at face
// value; no consistency check against the file's actual fingerprint is
// performed. An explicit catalog always wins, even when the build is unknown.
func Resolve(file string, fingerprint func() (int, error), explicitRef, explicitCatalog string) (Resolution, error) {
	var res Resolution
	if explicitRef != "" {
		res.Reference = explicitRef
	} else {
		fp, err := fingerprint()
		if err != nil {
			return res, err
		}
		b, ok := LookupFingerprint(fp)
		if !ok {
			return res, &UnresolvedGenomeError{File: file, Fingerprint: fp}
		}
		res.Build = b.ID
		res.Reference = b.Reference
		log.Printf("%s: inferred genome build %s, using reference %s\n", file, b.ID, b.Reference)
	}

	if explicitCatalog != "" {
		res.Catalog = explicitCatalog
		return res, nil
	}
	if catalog, ok := CatalogForBuild(res.Build); ok {
		res.Catalog = catalog
		log.Printf("using variant catalog %s\n", catalog)
	}
	// A build outside the catalog groups, or an explicit reference without an
	// explicit catalog, leaves Catalog empty. ExpansionHunter rejects the
	// missing argument downstream.
	return res, nil
}
