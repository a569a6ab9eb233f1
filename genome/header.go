package genome

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
)

// Fingerprint sums every reference sequence length declared in the header.
// The sum is order-independent and duplicate entries count as-is.
func Fingerprint(h sam.Header) int {
	var sum int
	for i := range h.Chroms {
		sum += h.Chroms[i].Size
	}
	return sum
}

// ReadHeader reads only the header of a BAM or SAM file.
func ReadHeader(filename string) (sam.Header, error) {
	switch {
	case strings.HasSuffix(filename, ".bam"):
		br, header := sam.OpenBam(filename)
		err := br.Close()
		return header, err
	case strings.HasSuffix(filename, ".sam"):
		file := fileio.EasyOpen(filename)
		header := sam.ReadHeader(file)
		err := file.Close()
		return header, err
	}
	return sam.Header{}, fmt.Errorf("%s: expected a .bam or .sam file", filename)
}

// SampleName returns the SM field of the first @RG header line. The sample
// name comes from the file metadata, never from the filename.
func SampleName(h sam.Header) (string, error) {
	for _, line := range h.Text {
		if !strings.HasPrefix(line, "@RG") {
			continue
		}
		for _, field := range strings.Split(line, "\t") {
			if strings.HasPrefix(field, "SM:") {
				return strings.TrimPrefix(field, "SM:"), nil
			}
		}
	}
	return "", errors.New("no @RG line with an SM tag, cannot determine sample name")
}
