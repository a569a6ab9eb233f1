package genome

import (
	"log"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// FingerprintFromFai sums the sequence lengths recorded in a fasta .fai index,
// giving the fingerprint an alignment against that reference would carry in
// its header. Useful when registering a new reference in the build table.
func FingerprintFromFai(filename string) int {
	file := fileio.EasyOpen(filename)
	var sum int
	var line string
	var col []string
	var size int
	var done bool
	var err error
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		col = strings.Split(line, "\t")
		if len(col) != 5 {
			log.Fatalf("ERROR: malformed index file: %s\nerror on line:\n%s\n", filename, line)
		}
		size, err = strconv.Atoi(col[1])
		exception.PanicOnErr(err)
		sum += size
	}
	err = file.Close()
	exception.PanicOnErr(err)
	return sum
}
