package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"LeadProspector/internal/domain"
)

// ExportCSV writes the collection as flat CSV for the curator's spreadsheet
// workflow. Analysis details stay in the JSON files.
func ExportCSV(articles []domain.Article, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{"articleID", "title", "url", "date", "company", "location", "compatibility"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, a := range articles {
		date := ""
		if a.Date != nil {
			date = *a.Date
		}
		row := []string{
			a.ArticleID,
			a.Title,
			a.URL,
			date,
			a.Company,
			a.Location,
			strconv.Itoa(a.Compatibility),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
