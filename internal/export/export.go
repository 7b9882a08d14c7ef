// Package export builds CSV and JSON downloads from already-fetched rows.
// Column sets are hardcoded per export type; CSV fields are JSON-stringified
// and comma-joined, which round-trips embedded commas and quotes the same
// way the web client always has.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/timeutil"
)

// Export types
const (
	TypeReceipts  = "receipts"
	TypeTakes     = "takes"
	TypeGreenroom = "greenroom"
)

var columnSets = map[string][]string{
	TypeReceipts: {
		"id", "vendor", "amount", "tax_amount", "currency", "purchase_date",
		"expense_type", "reimbursement_status", "verified", "created_at",
	},
	TypeTakes: {
		"id", "scene_number", "take_number", "status", "camera", "setup",
		"timecode", "notes", "logged_by", "created_at",
	},
	TypeGreenroom: {
		"project_id", "title", "status", "votes",
	},
}

// Columns returns the hardcoded column list for an export type.
func Columns(exportType string) ([]string, error) {
	columns, ok := columnSets[exportType]
	if !ok {
		return nil, fmt.Errorf("unknown export type %q", exportType)
	}
	return columns, nil
}

// CSV renders rows as a download: the first line is exactly the column list,
// then one line per row with each field JSON-stringified.
func CSV(exportType string, rows []map[string]interface{}) ([]byte, error) {
	columns, err := Columns(exportType)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteString(strings.Join(columns, ","))
	b.WriteByte('\n')
	for _, row := range rows {
		fields := make([]string, 0, len(columns))
		for _, column := range columns {
			data, err := json.Marshal(row[column])
			if err != nil {
				return nil, err
			}
			fields = append(fields, string(data))
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}

// JSON renders rows as an array of objects restricted to the export columns.
func JSON(exportType string, rows []map[string]interface{}) ([]byte, error) {
	columns, err := Columns(exportType)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]interface{}, len(columns))
		for _, column := range columns {
			obj[column] = row[column]
		}
		out = append(out, obj)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Filename names a download with the export type and date:
// receipts_2026-08-25.csv
func Filename(exportType, ext string) string {
	return fmt.Sprintf("%s_%s.%s", exportType, timeutil.Now().Format("2006-01-02"), ext)
}

// ReceiptRows flattens receipts into export rows.
func ReceiptRows(receipts []*models.Receipt) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(receipts))
	for _, receipt := range receipts {
		var purchaseDate interface{}
		if receipt.PurchaseDate != nil {
			purchaseDate = receipt.PurchaseDate.Format("2006-01-02")
		}
		var amount interface{}
		if receipt.Amount != nil {
			amount = *receipt.Amount
		}
		var taxAmount interface{}
		if receipt.TaxAmount != nil {
			taxAmount = *receipt.TaxAmount
		}
		rows = append(rows, map[string]interface{}{
			"id":                   receipt.ID,
			"vendor":               receipt.Vendor,
			"amount":               amount,
			"tax_amount":           taxAmount,
			"currency":             receipt.Currency,
			"purchase_date":        purchaseDate,
			"expense_type":         receipt.ExpenseType,
			"reimbursement_status": receipt.ReimbursementStatus,
			"verified":             receipt.Verified,
			"created_at":           receipt.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

// TakeRows flattens takes into export rows.
func TakeRows(takes []*models.Take) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(takes))
	for _, take := range takes {
		rows = append(rows, map[string]interface{}{
			"id":           take.ID,
			"scene_number": take.SceneNumber,
			"take_number":  take.TakeNumber,
			"status":       take.Status,
			"camera":       take.Camera,
			"setup":        take.Setup,
			"timecode":     take.Timecode,
			"notes":        take.Notes,
			"logged_by":    take.LoggedBy,
			"created_at":   take.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

// GreenroomRows flattens contest tallies into export rows.
func GreenroomRows(tallies []models.ProjectTally) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(tallies))
	for _, tally := range tallies {
		rows = append(rows, map[string]interface{}{
			"project_id": tally.ProjectID,
			"title":      tally.Title,
			"status":     tally.Status,
			"votes":      tally.Votes,
		})
	}
	return rows
}
