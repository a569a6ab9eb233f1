package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/speleonut/repeat-expansion-detection/genome"
	"github.com/speleonut/repeat-expansion-detection/jobs"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/sam"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

var debug int = 0

func usage() {
	fmt.Print(
		"callRepeatExpansions - Run ExpansionHunter on one file of a job array,\n" +
			"inferring the reference genome build and variant catalog from the file header.\n" +
			"The input is selected from the manifest by SLURM_ARRAY_TASK_ID (or -a).\n\n" +
			"options:\n")
	flag.PrintDefaults()
}

func main() {
	var manifest *string = flag.String("i", "", "Manifest file with one input BAM/SAM path per line.")
	var ref *string = flag.String("g", "", "Reference genome fasta. Skips genome build inference from the file header.")
	var catalog *string = flag.String("c", "", "ExpansionHunter variant catalog JSON. Skips the build to catalog mapping.")
	var outDir *string = flag.String("o", "", "Output directory. Defaults to "+defaultOutputBase()+"/expansionHunter/output/SAMPLE.")
	var taskIndex *int = flag.Int("a", envTaskIndex(), "Array task index selecting a manifest line. Defaults to SLURM_ARRAY_TASK_ID.")
	var exe *string = flag.String("exe", "ExpansionHunter", "ExpansionHunter executable.")
	var threads *int = flag.Int("threads", 1, "Number of ExpansionHunter threads.")
	var checkManifest *bool = flag.Bool("checkManifest", false, "Resolve every manifest entry and print a per-file report instead of running ExpansionHunter.")
	var printFingerprint *string = flag.String("printFingerprint", "", "Print the genome fingerprint of a BAM/SAM/.fai file and any matching build, then exit.")
	var debugVal *int = flag.Int("debug", 0, "Set to 1 or greater for debug prints.")
	flag.Usage = usage
	flag.Parse()
	debug = *debugVal

	if *printFingerprint != "" {
		reportFingerprint(*printFingerprint)
		return
	}

	if *manifest == "" {
		usage()
		log.Fatalln("ERROR: must input a manifest file with -i")
	}

	if *checkManifest {
		auditManifest(*manifest)
		return
	}

	cfg := jobs.Config{
		Manifest:   *manifest,
		TaskIndex:  *taskIndex,
		Reference:  *ref,
		Catalog:    *catalog,
		OutputDir:  *outDir,
		OutputBase: defaultOutputBase(),
	}
	p, err := jobs.Resolve(cfg, genome.ReadHeader)
	if err != nil {
		log.Fatalf("ERROR: %v\n", err)
	}

	if debug > 0 {
		header, err := genome.ReadHeader(p.InputFile)
		exception.PanicOnErr(err)
		plotSequenceLengths(header)
	}

	err = os.MkdirAll(p.OutputDir, 0755)
	if err != nil {
		log.Fatalf("ERROR: could not create output directory %s: %v\n", p.OutputDir, err)
	}

	runExpansionHunter(*exe, p, *threads)
}

// envTaskIndex reads the scheduler-provided array index. Absent means index 0
// so single runs outside an array still work.
func envTaskIndex() int {
	s := os.Getenv("SLURM_ARRAY_TASK_ID")
	if s == "" {
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("ERROR: SLURM_ARRAY_TASK_ID must be an integer, got %s\n", s)
	}
	return i
}

func defaultOutputBase() string {
	return filepath.Join("/hpcfs/users", os.Getenv("USER"))
}

// runExpansionHunter launches the external tool and propagates its exit
// status as our own.
func runExpansionHunter(exe string, p jobs.Params, threads int) {
	args := []string{
		"--reads", p.InputFile,
		"--reference", p.Reference,
		"--variant-catalog", p.Catalog,
		"--output-prefix", filepath.Join(p.OutputDir, p.SampleName),
	}
	if threads > 1 {
		args = append(args, "--threads", strconv.Itoa(threads))
	}
	log.Printf("running %s %s\n", exe, strings.Join(args, " "))
	cmd := exec.Command(exe, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	log.Fatalf("ERROR: could not run %s: %v\n", exe, err)
}

// auditManifest resolves every manifest entry so a bad file list is caught
// before the whole array is submitted.
func auditManifest(manifest string) {
	files, err := jobs.ReadManifest(manifest)
	if err != nil {
		log.Fatalf("ERROR: %v\n", err)
	}
	buildCounts := make(map[string]int)
	var failures int
	for i, file := range files {
		header, err := genome.ReadHeader(file)
		if err != nil {
			fmt.Printf("%d\t%s\tERROR: %v\n", i, file, err)
			failures++
			continue
		}
		fp := genome.Fingerprint(header)
		b, ok := genome.LookupFingerprint(fp)
		if !ok {
			fmt.Printf("%d\t%s\tunmatched fingerprint %d\n", i, file, fp)
			failures++
			continue
		}
		catalog, _ := genome.CatalogForBuild(b.ID)
		fmt.Printf("%d\t%s\t%s\t%s\n", i, file, b.ID, catalog)
		buildCounts[b.ID]++
		if debug > 0 {
			plotSequenceLengths(header)
		}
	}
	builds := maps.Keys(buildCounts)
	slices.Sort(builds)
	for _, b := range builds {
		fmt.Printf("%s: %d files\n", b, buildCounts[b])
	}
	if failures > 0 {
		log.Fatalf("ERROR: %d of %d manifest files did not resolve\n", failures, len(files))
	}
}

// reportFingerprint prints the fingerprint of a single file, for registering
// new references in the build table.
func reportFingerprint(file string) {
	var fp int
	if strings.HasSuffix(file, ".fai") {
		fp = genome.FingerprintFromFai(file)
	} else {
		header, err := genome.ReadHeader(file)
		if err != nil {
			log.Fatalf("ERROR: %v\n", err)
		}
		fp = genome.Fingerprint(header)
	}
	fmt.Printf("%s\t%d\n", file, fp)
	if b, ok := genome.LookupFingerprint(fp); ok {
		fmt.Printf("matches build %s (%s)\n", b.ID, b.Reference)
	} else {
		fmt.Printf("no matching build. known builds: %s\n", strings.Join(genome.KnownBuilds(), ", "))
	}
}

func plotSequenceLengths(header sam.Header) {
	lengths := make([]float64, len(header.Chroms))
	for i := range header.Chroms {
		lengths[i] = float64(header.Chroms[i].Size) / 1e6
	}
	mean, sd := stat.MeanStdDev(lengths, nil)
	log.Printf("%d sequences declared, mean length %.1f Mb, sd %.1f Mb\n", len(lengths), mean, sd)
	fmt.Println(asciigraph.Plot(lengths, asciigraph.Height(5), asciigraph.Precision(0), asciigraph.Caption("declared sequence lengths (Mb)")))
}
