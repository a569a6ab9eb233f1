// Package genome infers which reference genome an alignment file was mapped
// against from the total reference length declared in its header, and maps the
// inferred build to a matching ExpansionHunter variant catalog.
package genome

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const refBase string = "/hpcfs/groups/phoenix-hpc-neurogenetics/RefSeq"
const catalogBase string = refBase + "/ExpansionHunter"

const (
	grch38Catalog string = catalogBase + "/variant_catalog_with_offtargets_hg38.json"
	grch37Catalog string = catalogBase + "/variant_catalog_with_offtargets_hg19.json"
	chm13Catalog  string = catalogBase + "/variant_catalog_chm13.json"
)

// Build is one known reference genome assembly.
type Build struct {
	ID        string // short build name, e.g. GRCh38 or hs38DH
	Reference string // path to the fasta the build was aligned against
}

// buildsByFingerprint is keyed on the sum of all reference sequence lengths
// declared in an alignment file header. Lookup is exact; each registered
// assembly has a unique total length. Two different reference sets that sum to
// the same total are indistinguishable, so any new entry must not collide with
// an existing key.
var buildsByFingerprint = map[int]Build{
	3099922541: {"GRCh38", refBase + "/GCA_000001405.15_GRCh38_no_alt_analysis_set.fna.gz"},
	3105599541: {"GRCh38.hs38d1", refBase + "/GCA_000001405.15_GRCh38_no_alt_plus_hs38d1_analysis_set.fna.gz"},
	3209286105: {"GRCh38.blacklist", refBase + "/GRCh38_full_analysis_set.blacklist_masked.fa"},
	3217346917: {"hs38DH", refBase + "/hs38DH.fa"},
	3137161264: {"hg19", refBase + "/ucsc.hg19.fasta"},
	3095693983: {"hg19_1stM_unmask_ran_all", refBase + "/hg19_1stM_unmask_ran_all.fa"},
	3137454505: {"hs37d5", refBase + "/hs37d5.fa"},
	3117292070: {"CHM13v2", refBase + "/chm13v2.0.fa"},
	2730871774: {"GRCm38", refBase + "/Mus_musculus.GRCm38.dna.primary_assembly.fa"},
	2728222451: {"GRCm39", refBase + "/Mus_musculus.GRCm39.dna.primary_assembly.fa"},
}

// catalogsByBuild groups equivalent builds onto a shared variant catalog.
// Mouse builds are deliberately absent; they resolve to a reference but carry
// no catalog.
var catalogsByBuild = map[string]string{
	"GRCh38":                   grch38Catalog,
	"GRCh38.hs38d1":            grch38Catalog,
	"GRCh38.blacklist":         grch38Catalog,
	"hs38DH":                   grch38Catalog,
	"hg19":                     grch37Catalog,
	"hg19_1stM_unmask_ran_all": grch37Catalog,
	"hs37d5":                   grch37Catalog,
	"CHM13v2":                  chm13Catalog,
}

// LookupFingerprint returns the build whose total reference length exactly
// equals fingerprint.
func LookupFingerprint(fingerprint int) (Build, bool) {
	b, ok := buildsByFingerprint[fingerprint]
	return b, ok
}

// CatalogForBuild returns the variant catalog shared by the family buildID
// belongs to.
func CatalogForBuild(buildID string) (string, bool) {
	catalog, ok := catalogsByBuild[buildID]
	return catalog, ok
}

// KnownBuilds returns the IDs of all registered builds in sorted order.
func KnownBuilds() []string {
	var ids []string
	for _, b := range maps.Values(buildsByFingerprint) {
		ids = append(ids, b.ID)
	}
	slices.Sort(ids)
	return ids
}

// UnresolvedGenomeError reports a header fingerprint that matched no
// registered build.
type UnresolvedGenomeError struct {
	File        string
	Fingerprint int
}

func (e *UnresolvedGenomeError) Error() string {
	return fmt.Sprintf("could not match %s (total reference length %d) to a known genome build. Set the reference genome explicitly with -g", e.File, e.Fingerprint)
}
