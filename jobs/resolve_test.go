package jobs

import (
	"errors"
	"strings"
	"testing"

	"github.com/speleonut/repeat-expansion-detection/genome"
	"github.com/vertgenlab/gonomics/chromInfo"
	"github.com/vertgenlab/gonomics/sam"
)

// fakeHeader builds a header for a sample whose declared lengths sum to the
// given fingerprint, split over two sequences.
func fakeHeader(sample string, fingerprint int) sam.Header {
	var h sam.Header
	h.Chroms = []chromInfo.ChromInfo{
		{Name: "chr1", Size: fingerprint - 1000},
		{Name: "chr2", Size: 1000},
	}
	h.Text = []string{
		"@HD\tVN:1.6\tSO:coordinate",
		"@RG\tID:lane1\tSM:" + sample + "\tPL:ILLUMINA",
	}
	return h
}

func TestReadManifest(t *testing.T) {
	files, err := ReadManifest("testdata/manifest.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0] != "testdata/sampleA.bam" || files[1] != "testdata/sampleB.bam" {
		t.Error("problem reading manifest, blank lines should be skipped", files)
	}

	if _, err = ReadManifest("testdata/empty.txt"); err == nil {
		t.Error("empty manifest should be an error")
	}
}

func TestSelectFile(t *testing.T) {
	files := []string{"a.bam", "b.bam", "c.bam"}
	f, err := SelectFile(files, 1)
	if err != nil || f != "b.bam" {
		t.Error("problem selecting file by array index", f, err)
	}
	if _, err = SelectFile(files, 3); err == nil {
		t.Error("index past the end of the manifest should be an error")
	}
	if _, err = SelectFile(files, -1); err == nil {
		t.Error("negative index should be an error")
	}
}

func TestResolveInferred(t *testing.T) {
	cfg := Config{
		Manifest:   "testdata/manifest.txt",
		TaskIndex:  0,
		OutputBase: "/hpcfs/users/test",
	}
	p, err := Resolve(cfg, func(file string) (sam.Header, error) {
		return fakeHeader("sampleA", 3217346917), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.InputFile != "testdata/sampleA.bam" || p.SampleName != "sampleA" {
		t.Error("problem selecting input file and sample", p)
	}
	if p.Build != "hs38DH" || !strings.HasSuffix(p.Reference, "hs38DH.fa") {
		t.Error("problem inferring genome build from header", p)
	}
	if !strings.Contains(p.Catalog, "hg38") {
		t.Error("hs38DH should map to the GRCh38 family catalog", p.Catalog)
	}
	if p.OutputDir != "/hpcfs/users/test/expansionHunter/output/sampleA" {
		t.Error("problem with default output directory", p.OutputDir)
	}
}

func TestResolveExplicitOverrides(t *testing.T) {
	cfg := Config{
		Manifest:   "testdata/manifest.txt",
		TaskIndex:  1,
		Reference:  "/custom/ref.fa",
		Catalog:    "/custom/catalog.json",
		OutputDir:  "/custom/out",
		OutputBase: "/hpcfs/users/test",
	}
	var headerReads int
	p, err := Resolve(cfg, func(file string) (sam.Header, error) {
		headerReads++
		// fingerprint matches nothing, proving the lookup is skipped
		return fakeHeader("sampleB", 999999), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if headerReads != 1 {
		t.Error("header should be read exactly once, for the sample name", headerReads)
	}
	if p.Build != "" || p.Reference != "/custom/ref.fa" || p.Catalog != "/custom/catalog.json" {
		t.Error("explicit reference and catalog should pass through unchanged", p)
	}
	if p.OutputDir != "/custom/out" {
		t.Error("explicit output directory should pass through unchanged", p.OutputDir)
	}
}

func TestResolveUnmatchedFingerprint(t *testing.T) {
	cfg := Config{
		Manifest:   "testdata/manifest.txt",
		TaskIndex:  0,
		OutputBase: "/hpcfs/users/test",
	}
	_, err := Resolve(cfg, func(file string) (sam.Header, error) {
		return fakeHeader("sampleA", 999999), nil
	})
	var unresolved *genome.UnresolvedGenomeError
	if !errors.As(err, &unresolved) {
		t.Fatal("expected UnresolvedGenomeError, got", err)
	}
	if unresolved.Fingerprint != 999999 || unresolved.File != "testdata/sampleA.bam" {
		t.Error("error should name the offending file and fingerprint", unresolved)
	}
}

func TestResolveIndexOutOfRange(t *testing.T) {
	cfg := Config{
		Manifest:  "testdata/manifest.txt",
		TaskIndex: 5,
	}
	_, err := Resolve(cfg, func(file string) (sam.Header, error) {
		t.Error("header should not be read when no file is selected")
		return sam.Header{}, nil
	})
	if err == nil {
		t.Error("index past the end of the manifest should be an error")
	}
}
