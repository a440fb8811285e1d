package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"stock-order-service/internal/models"
	"stock-order-service/internal/services"
)

// ImportRunner runs the reconciliation pipeline for one parsed order
type ImportRunner interface {
	Run(ctx context.Context, lines []models.OrderLine, opts services.ImportOptions) (*models.ImportSummary, error)
}

// ImportHandler accepts wholesale order documents and hands them to the
// pipeline. It is a thin adapter: file parsing and HTTP shaping only, no
// reconciliation logic.
type ImportHandler struct {
	runner ImportRunner
	log    *logrus.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(runner ImportRunner, log *logrus.Logger) *ImportHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ImportHandler{runner: runner, log: log}
}

// GetImportTemplate returns the order template definition or file
// GET /api/v1/stock-orders/import/template
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	template := models.OrderImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c, template)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=stock_order_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)
}

func (h *ImportHandler) generateXLSXTemplate(c *gin.Context, template models.ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Order"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(sheetName, cell, headerText)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=stock_order_import_template.xlsx")
	f.Write(c.Writer)
}

// ImportOrder accepts an order document (CSV or XLSX), validates it, and runs
// the stock order pipeline
// POST /api/v1/stock-orders/import
func (h *ImportHandler) ImportOrder(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Please upload a CSV or Excel order file",
			},
		})
		return
	}
	defer file.Close()

	var opts services.ImportOptions
	opts.FileName = header.Filename
	if raw := c.PostForm("dryRun"); raw != "" {
		// This flag gates real catalog mutations; a value we cannot parse
		// must never silently become "not a dry run"
		dryRun, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "INVALID_DRY_RUN",
					Message: fmt.Sprintf("dryRun value %q is not a boolean", raw),
				},
			})
			return
		}
		opts.DryRun = &dryRun
	}

	filename := strings.ToLower(header.Filename)
	var rows []map[string]string
	var parseErr error
	switch {
	case strings.HasSuffix(filename, ".csv"):
		rows, parseErr = parseCSV(file)
	case strings.HasSuffix(filename, ".xlsx"):
		rows, parseErr = parseXLSX(file)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_FORMAT",
				Message: "Only CSV and XLSX files are supported",
			},
		})
		return
	}
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PARSE_ERROR",
				Message: parseErr.Error(),
			},
		})
		return
	}

	// Hard precondition: required columns must be present before any
	// mutation is attempted
	lines, err := models.OrderLinesFromRows(rows)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	summary, err := h.runner.Run(c.Request.Context(), lines, opts)
	if err != nil {
		h.log.WithError(err).Error("Import run aborted")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "IMPORT_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	status := http.StatusOK
	if !summary.Completed {
		// Shell creation failed; the reconciliation counts still come back
		status = http.StatusBadGateway
	}
	c.JSON(status, models.SuccessResponse{
		Success: summary.Completed,
		Data:    summary,
	})
}

// parseCSV parses a CSV file into header-keyed rows
func parseCSV(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	normalizeHeaders(headers)

	var rows []map[string]string
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(lineNum + 1)
		rows = append(rows, row)
		lineNum++
	}
	return rows, nil
}

// parseXLSX parses an Excel file into header-keyed rows
func parseXLSX(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	sheetName := sheets[0]

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	normalizeHeaders(headers)

	var rows []map[string]string
	for rowIdx, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		// GetRows drops trailing empty cells, so rows are padded out to the
		// header width; every header must key every row or column detection
		// downstream misfires on the first row's empty cells.
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(excelRow) {
				value = excelRow[i]
			}
			row[header] = strings.TrimSpace(value)
		}
		row["_row"] = strconv.Itoa(rowIdx + 2)
		rows = append(rows, row)
	}
	return rows, nil
}

// normalizeHeaders lowercases, trims, and strips the required marker so
// headers line up with the column constants
func normalizeHeaders(headers []string) {
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
		headers[i] = strings.TrimSuffix(headers[i], " *")
	}
}
