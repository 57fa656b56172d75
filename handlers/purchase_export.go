package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"opsboard/models"
)

// ExportPurchases writes the filtered purchase list as an .xlsx
// download, one row per purchase item. Accepts the same query
// parameters as GetAllPurchases minus pagination.
func ExportPurchases(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, purchaseFKParams)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var purchases []models.Purchase
	query := purchaseQuery(params).Order("date ASC NULLS FIRST")
	if err := preloadPurchase(query).Preload("Items.Product.Unit").Find(&purchases).Error; err != nil {
		writeDBError(w, err)
		return
	}

	f, err := createPurchaseSheet(purchases)
	if err != nil {
		http.Error(w, "failed to generate excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("purchases_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func createPurchaseSheet(purchases []models.Purchase) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Purchases"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", "Purchases")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	headers := []string{"Date", "Day", "Pickup", "Supplier", "Product", "Unit", "Quantity", "Notes"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	row := 5
	for _, p := range purchases {
		date := ""
		if p.Date != nil {
			date = p.Date.Time().Format("2006-01-02")
		}
		day := ""
		if p.Day != nil {
			day = string(*p.Day)
		}
		pickup := ""
		if p.Pickup != nil {
			pickup = p.Pickup.Name
		}
		supplier := ""
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}

		writeRow := func(product, unit string, quantity interface{}) {
			values := []interface{}{date, day, pickup, supplier, product, unit, quantity, p.Notes}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
				f.SetCellValue(sheetName, cell, v)
			}
			row++
		}

		if len(p.Items) == 0 {
			writeRow("", "", "")
			continue
		}
		for _, item := range p.Items {
			product, unit := "", ""
			if item.Product != nil {
				product = item.Product.Name
				if item.Product.Unit != nil {
					unit = item.Product.Unit.Name
				}
			}
			writeRow(product, unit, item.Quantity)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// sanitizeFilename replaces filesystem-hostile characters so uploaded
// names are safe to use on disk and in URLs.
func sanitizeFilename(filename string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, filename)
}
