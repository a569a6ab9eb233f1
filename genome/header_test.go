package genome

import (
	"testing"

	"github.com/vertgenlab/gonomics/chromInfo"
	"github.com/vertgenlab/gonomics/sam"
)

func TestFingerprint(t *testing.T) {
	var h sam.Header
	h.Chroms = []chromInfo.ChromInfo{
		{Name: "chr1", Size: 249250621},
		{Name: "chr2", Size: 243199373},
		{Name: "chrM", Size: 16569},
	}
	if Fingerprint(h) != 249250621+243199373+16569 {
		t.Error("problem summing declared sequence lengths", Fingerprint(h))
	}

	if Fingerprint(sam.Header{}) != 0 {
		t.Error("empty header should fingerprint to zero")
	}
}

func TestSampleName(t *testing.T) {
	var h sam.Header
	h.Text = []string{
		"@HD\tVN:1.6\tSO:coordinate",
		"@SQ\tSN:chr1\tLN:249250621",
		"@RG\tID:HXXVII.1\tSM:NA12878\tPL:ILLUMINA",
		"@RG\tID:HXXVII.2\tSM:otherSample\tPL:ILLUMINA",
	}
	name, err := SampleName(h)
	if err != nil {
		t.Fatal(err)
	}
	if name != "NA12878" {
		t.Error("problem extracting sample name from @RG line", name)
	}

	h.Text = []string{"@HD\tVN:1.6", "@RG\tID:noSampleTag"}
	if _, err = SampleName(h); err == nil {
		t.Error("missing SM tag should be an error")
	}
}

func TestReadHeader(t *testing.T) {
	h, err := ReadHeader("testdata/test.sam")
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Chroms) != 2 || Fingerprint(h) != 492449994 {
		t.Error("problem reading header from sam file", h.Chroms)
	}
	name, err := SampleName(h)
	if err != nil {
		t.Fatal(err)
	}
	if name != "testSample" {
		t.Error("problem reading sample name from sam file", name)
	}

	if _, err = ReadHeader("testdata/test.txt"); err == nil {
		t.Error("unrecognized file type should be an error")
	}
}
