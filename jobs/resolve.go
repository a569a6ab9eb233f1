// Package jobs resolves the parameters for one array task: which input file
// this task owns, which sample it belongs to, and where its output goes.
package jobs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/speleonut/repeat-expansion-detection/genome"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
)

// Config holds every invocation input as a plain value. TaskIndex is a
// required parameter rather than ambient scheduler state so resolution can run
// outside any scheduler context.
type Config struct {
	Manifest   string
	TaskIndex  int
	Reference  string // explicit reference genome, skips header inference
	Catalog    string // explicit variant catalog, skips the build mapping
	OutputDir  string // explicit output directory
	OutputBase string // base for the default output directory
}

// Params is the resolved bundle consumed by the ExpansionHunter invocation.
type Params struct {
	InputFile  string
	SampleName string
	Build      string
	Reference  string
	Catalog    string
	OutputDir  string
}

// ReadManifest loads the ordered list of input files, one path per line.
// Blank lines are skipped.
func ReadManifest(filename string) ([]string, error) {
	var files []string
	file := fileio.EasyOpen(filename)
	var line string
	var done bool
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	err := file.Close()
	exception.PanicOnErr(err)
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: no input files listed", filename)
	}
	return files, nil
}

// SelectFile picks the manifest entry for one array task.
func SelectFile(files []string, index int) (string, error) {
	if index < 0 || index >= len(files) {
		return "", fmt.Errorf("array task index %d out of range for manifest with %d files", index, len(files))
	}
	return files[index], nil
}

// Resolve turns a task configuration into the final parameter bundle for one
// ExpansionHunter run. readHeader is called exactly once, for the sample name
// and, when no explicit reference is given, the genome fingerprint.
func Resolve(cfg Config, readHeader func(string) (sam.Header, error)) (Params, error) {
	var p Params
	files, err := ReadManifest(cfg.Manifest)
	if err != nil {
		return p, err
	}
	p.InputFile, err = SelectFile(files, cfg.TaskIndex)
	if err != nil {
		return p, err
	}

	header, err := readHeader(p.InputFile)
	if err != nil {
		return p, err
	}
	p.SampleName, err = genome.SampleName(header)
	if err != nil {
		return p, fmt.Errorf("%s: %w", p.InputFile, err)
	}

	res, err := genome.Resolve(p.InputFile, func() (int, error) {
		return genome.Fingerprint(header), nil
	}, cfg.Reference, cfg.Catalog)
	if err != nil {
		return p, err
	}
	p.Build = res.Build
	p.Reference = res.Reference
	p.Catalog = res.Catalog

	p.OutputDir = cfg.OutputDir
	if p.OutputDir == "" {
		p.OutputDir = filepath.Join(cfg.OutputBase, "expansionHunter", "output", p.SampleName)
	}
	return p, nil
}
