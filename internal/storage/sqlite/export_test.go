// ABOUTME: Tests for FAQ import and export
// ABOUTME: Verifies CSV header handling, blank-row skipping and YAML documents
package sqlite

import (
	"bytes"
	"strings"
	"testing"

	"github.com/harper/faqbot/internal/models"
	"gopkg.in/yaml.v3"
)

func TestWriteCSV(t *testing.T) {
	faqs := []models.FAQ{
		*mustFAQ(t, "What are your hours?", "9 to 5"),
		*mustFAQ(t, "Do you ship, abroad?", "Yes, \"worldwide\""),
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, faqs); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "question,answer\n" +
		"What are your hours?,9 to 5\n" +
		"\"Do you ship, abroad?\",\"Yes, \"\"worldwide\"\"\"\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"basic", "question,answer\nQ1,A1\nQ2,A2\n", []string{"Q1", "Q2"}, false},
		{"reordered columns", "answer,question\nA1,Q1\n", []string{"Q1"}, false},
		{"extra columns", "id,question,answer,tag\n1,Q1,A1,x\n", []string{"Q1"}, false},
		{"skips blank values", "question,answer\nQ1,\n,A2\n  ,  \nQ3,A3\n", []string{"Q3"}, false},
		{"short row skipped", "question,answer\nonly\nQ2,A2\n", []string{"Q2"}, false},
		{"bom header", "\ufeffquestion,answer\nQ1,A1\n", []string{"Q1"}, false},
		{"empty input", "", []string{}, false},
		{"missing column", "question,reply\nQ1,A1\n", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faqs, err := ReadCSV(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCSV() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got := models.Questions(faqs)
			if len(got) != len(tt.want) {
				t.Fatalf("ReadCSV() questions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("question[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
			for _, faq := range faqs {
				if faq.ID == "" {
					t.Error("imported faq missing id")
				}
			}
		})
	}
}

func TestCSVRoundTripPreservesOrder(t *testing.T) {
	faqs := []models.FAQ{
		*mustFAQ(t, "one", "1"),
		*mustFAQ(t, "two", "2"),
		*mustFAQ(t, "three", "3"),
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, faqs); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	got := models.Questions(back)
	if strings.Join(got, ",") != "one,two,three" {
		t.Errorf("round trip questions = %v", got)
	}
}

func TestWriteYAML(t *testing.T) {
	faqs := []models.FAQ{*mustFAQ(t, "What are your hours?", "9 to 5")}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, faqs); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	var doc ExportData
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if doc.Tool != "faqbot" || doc.Version != "1.0" {
		t.Errorf("header = %s/%s", doc.Tool, doc.Version)
	}
	if len(doc.FAQs) != 1 || doc.FAQs[0].ID != faqs[0].ID {
		t.Errorf("FAQs = %+v", doc.FAQs)
	}
}

func TestReadYAML(t *testing.T) {
	input := `version: "1.0"
tool: faqbot
faqs:
  - id: keep-me
    question: What are your hours?
    answer: 9 to 5
  - question: Where are you?
    answer: Berlin
`
	faqs, err := ReadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadYAML() error = %v", err)
	}
	if len(faqs) != 2 {
		t.Fatalf("ReadYAML() returned %d faqs, want 2", len(faqs))
	}
	if faqs[0].ID != "keep-me" {
		t.Errorf("faqs[0].ID = %q, want keep-me", faqs[0].ID)
	}
	if faqs[1].ID == "" {
		t.Error("faqs[1] missing generated id")
	}
}

func TestReadYAML_InvalidEntry(t *testing.T) {
	input := "faqs:\n  - question: no answer\n"
	if _, err := ReadYAML(strings.NewReader(input)); err == nil {
		t.Error("ReadYAML() should reject an entry without an answer")
	}
}
