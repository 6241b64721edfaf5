package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputSet holds the artifact paths derived for one source workbook.
type OutputSet struct {
	Workbook string // merged .xlsx
	JSON     string // structured export
	CSV      string // flattened grouped table
}

// OutputNamer derives output artifact paths from source workbook
// names. All artifacts for a run land in one output directory.
type OutputNamer struct {
	outDir string
}

// NewOutputNamer creates an output namer rooted at outDir.
func NewOutputNamer(outDir string) *OutputNamer {
	return &OutputNamer{outDir: outDir}
}

// For returns the artifact paths for the given source workbook. A
// source named report.xlsx yields report_merged.xlsx, report_data.json
// and report_grouped.csv.
func (n *OutputNamer) For(sourcePath string) OutputSet {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return OutputSet{
		Workbook: filepath.Join(n.outDir, stem+"_merged.xlsx"),
		JSON:     filepath.Join(n.outDir, stem+"_data.json"),
		CSV:      filepath.Join(n.outDir, stem+"_grouped.csv"),
	}
}

// EnsureDir creates the output directory with all parents.
func (n *OutputNamer) EnsureDir() error {
	if err := os.MkdirAll(n.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", n.outDir, err)
	}
	return nil
}
