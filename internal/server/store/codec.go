package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

// Encode serializes doc as indented JSON with a trailing newline. Field
// order follows the model and map keys are sorted, so encoding a decoded
// document is stable.
func Encode(doc *models.Document) ([]byte, error) {
	doc.Normalize()
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(b, '\n'), nil
}

// Decode parses data into a Document. Empty input yields an empty Document.
// Anything that does not match the document shape, including unknown keys
// and trailing content, is reported as common.ErrCorruptDocument.
func Decode(data []byte) (*models.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.NewDocument(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	doc := &models.Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", common.ErrCorruptDocument)
	}

	doc.Normalize()
	return doc, nil
}
