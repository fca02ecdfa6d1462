package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chpms/chpms/internal/hospital"
)

// Default report file names inside the output directory.
const (
	TextReportName  = "hospital_report.txt"
	ExcelReportName = "hospital_report.xlsx"
)

// WriteReports renders the text and spreadsheet reports into outputDir,
// creating the directory if needed. It returns the paths written.
func WriteReports(outputDir, hospitalName string, sys *hospital.System) (textPath, excelPath string, err error) {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return "", "", fmt.Errorf("create output directory: %w", err)
	}

	textPath = filepath.Join(outputDir, TextReportName)
	excelPath = filepath.Join(outputDir, ExcelReportName)

	report := sys.GenerateReport()

	tf, err := os.Create(textPath)
	if err != nil {
		return "", "", fmt.Errorf("create text report: %w", err)
	}
	if err := WriteText(tf, hospitalName, report); err != nil {
		tf.Close()
		return "", "", fmt.Errorf("render text report: %w", err)
	}
	if err := tf.Close(); err != nil {
		return "", "", fmt.Errorf("close text report: %w", err)
	}

	xf, err := os.Create(excelPath)
	if err != nil {
		return "", "", fmt.Errorf("create spreadsheet report: %w", err)
	}
	if err := WriteExcel(xf, hospitalName, sys); err != nil {
		xf.Close()
		return "", "", fmt.Errorf("render spreadsheet report: %w", err)
	}
	if err := xf.Close(); err != nil {
		return "", "", fmt.Errorf("close spreadsheet report: %w", err)
	}

	return textPath, excelPath, nil
}
