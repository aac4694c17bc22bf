// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestToCSL(t *testing.T) {
	res := sampleResult()
	res.DatasetTitle = str("Brain-wide map")

	item := ToCSL(res)

	if item.Type != "dataset" {
		t.Errorf("Type = %q, want dataset", item.Type)
	}
	if item.ID != "000409/draft" {
		t.Errorf("ID = %q", item.ID)
	}
	if item.Title != "Brain-wide map" {
		t.Errorf("Title = %q", item.Title)
	}
	if item.Abstract != "The study target is to map V1." {
		t.Errorf("Abstract = %q", item.Abstract)
	}
	if item.Keyword != "V1, orientation tuning" {
		t.Errorf("Keyword = %q", item.Keyword)
	}
	if item.Note != "Related publication: https://doi.org/10.1038/x" {
		t.Errorf("Note = %q", item.Note)
	}

	// The nameless person is omitted.
	if len(item.Author) != 2 {
		t.Fatalf("len(Author) = %d, want 2", len(item.Author))
	}
	if item.Author[0] != (CSLName{Family: "Doe", Given: "Jane"}) {
		t.Errorf("Author[0] = %+v", item.Author[0])
	}
	if item.Author[1] != (CSLName{Literal: "Allen Institute"}) {
		t.Errorf("Author[1] = %+v", item.Author[1])
	}
}

func TestWriteCSL(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResult(), FormatCSL); err != nil {
		t.Fatal(err)
	}

	var items []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not CSL-YAML: %v", err)
	}
	if len(items) != 1 || items[0].Type != "dataset" {
		t.Errorf("items = %+v", items)
	}
}
