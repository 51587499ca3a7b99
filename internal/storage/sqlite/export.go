// ABOUTME: Import and export of the FAQ corpus
// ABOUTME: CSV with a question,answer header and a versioned YAML document
package sqlite

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harper/faqbot/internal/models"
	"gopkg.in/yaml.v3"
)

// CSVHeader is the header row written on export and required on import
var CSVHeader = []string{"question", "answer"}

// ExportData is the YAML export document
type ExportData struct {
	Version    string       `yaml:"version" json:"version"`
	ExportedAt string       `yaml:"exported_at" json:"exported_at"`
	Tool       string       `yaml:"tool" json:"tool"`
	FAQs       []models.FAQ `yaml:"faqs" json:"faqs"`
}

// WriteCSV writes faqs as question,answer rows under a header
func WriteCSV(w io.Writer, faqs []models.FAQ) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, faq := range faqs {
		if err := cw.Write([]string{faq.Question, faq.Answer}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a CSV with question and answer columns located by header name.
// Rows where either value is blank are skipped. Returned FAQs carry fresh ids.
func ReadCSV(r io.Reader) ([]models.FAQ, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []models.FAQ{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	qCol, aCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "question":
			qCol = i
		case "answer":
			aCol = i
		}
	}
	if qCol < 0 || aCol < 0 {
		return nil, fmt.Errorf("csv header must contain question and answer columns, got %v", header)
	}

	faqs := []models.FAQ{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		if qCol >= len(record) || aCol >= len(record) {
			continue
		}
		faq, err := models.NewFAQ(record[qCol], record[aCol])
		if err != nil {
			continue
		}
		faqs = append(faqs, *faq)
	}
	return faqs, nil
}

// WriteYAML writes faqs as a versioned YAML document
func WriteYAML(w io.Writer, faqs []models.FAQ) error {
	data := ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tool:       "faqbot",
		FAQs:       faqs,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&data); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// ReadYAML parses a document produced by WriteYAML. Entries missing an id get one.
func ReadYAML(r io.Reader) ([]models.FAQ, error) {
	var data ExportData
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	faqs := make([]models.FAQ, 0, len(data.FAQs))
	for _, entry := range data.FAQs {
		faq, err := models.NewFAQ(entry.Question, entry.Answer)
		if err != nil {
			return nil, err
		}
		if entry.ID != "" {
			faq.ID = entry.ID
		}
		if !entry.CreatedAt.IsZero() {
			faq.CreatedAt = entry.CreatedAt
		}
		faqs = append(faqs, *faq)
	}
	return faqs, nil
}
