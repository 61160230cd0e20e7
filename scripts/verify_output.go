// verify_output checks a merged workbook written by cell-recon:
// no synthetic header survives, no data row is blank and the codes in
// column A keep their leading zeros.
//
//	go run scripts/verify_output.go output/cleaned_final.xlsx [sheet]
package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"cell-recon/internal/reconcile"

	"github.com/xuri/excelize/v2"
)

var digits = regexp.MustCompile(`^\d+$`)

func main() {
	filename := "output/cleaned_final.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if len(os.Args) > 2 {
		sheetName = os.Args[2]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== OUTPUT CHECK: %s ===\n", filename)
	fmt.Printf("Checking sheet: %s\n", sheetName)
	fmt.Printf("Total rows: %d\n\n", len(rows))

	problems := 0

	// Header rows
	for i := 0; i < 2 && i < len(rows); i++ {
		for c, cell := range rows[i] {
			if reconcile.IsSynthetic(strings.TrimSpace(cell)) {
				name, _ := excelize.CoordinatesToCellName(c+1, i+1)
				fmt.Printf("❌ SYNTHETIC HEADER at %s: '%s'\n", name, cell)
				problems++
			}
		}
	}

	// Data rows
	codes := 0
	for i := 2; i < len(rows); i++ {
		row := rows[i]
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if blank {
			fmt.Printf("❌ BLANK ROW at row %d\n", i+1)
			problems++
			continue
		}

		code := strings.TrimSpace(row[0])
		if code == "" {
			continue
		}
		if digits.MatchString(code) {
			codes++
			if len(code) < 4 {
				fmt.Printf("❌ UNPADDED CODE at A%d: '%s'\n", i+1, code)
				problems++
			}
		}
	}

	fmt.Printf("\nChecked %d data rows, %d numeric codes\n", max(len(rows)-2, 0), codes)

	if problems > 0 {
		fmt.Printf("❌ FAILED: Found %d problems!\n", problems)
		os.Exit(1)
	}
	fmt.Println("✅ PASSED: Output workbook is clean!")
}
