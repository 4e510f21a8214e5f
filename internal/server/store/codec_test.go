package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

const sampleDocument = `{
  "users": [
    {
      "id": 1,
      "username": "alice",
      "passwordHash": "$2a$10$abcdefghijklmnopqrstuv"
    }
  ],
  "investments": [
    {
      "id": 1,
      "ownerId": 1,
      "name": "Apple",
      "type": "stock",
      "amount": 1000.50,
      "currency": "USD"
    }
  ],
  "sequences": {
    "investments": 3,
    "users": 1
  }
}
`

func TestEncodeDecode_Idempotent(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	require.NoError(t, err)

	out, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, string(out))

	again, err := Decode(out)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(doc, again, cmp.Comparer(func(a, b models.Amount) bool { return a.Equal(b.Decimal) })))
}

func TestDecode_EmptyInputIsEmptyDocument(t *testing.T) {
	doc, err := Decode([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Users)
	assert.NotNil(t, doc.Users)
	assert.NotNil(t, doc.Investments)
}

func TestDecode_NullCollectionsAreNormalized(t *testing.T) {
	doc, err := Decode([]byte(`{"users": null}`))
	require.NoError(t, err)
	assert.NotNil(t, doc.Users)
	assert.NotNil(t, doc.Investments)
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{ this is not json`},
		{"wrong shape", `{"users": {"id": 1}}`},
		{"unknown key", `{"users": [], "investments": [], "accounts": []}`},
		{"trailing data", `{"users": []} {"users": []}`},
		{"trailing brace", `{"users": [], "investments": []} }`},
		{"trailing bracket", `{"users": [], "investments": []}]`},
		{"trailing word", `{"users": [], "investments": []} x`},
		{"bad amount", `{"investments": [{"id": 1, "amount": "lots"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			require.ErrorIs(t, err, common.ErrCorruptDocument)
		})
	}
}

func TestEncode_EmptyDocument(t *testing.T) {
	out, err := Encode(&models.Document{})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"users\": [],\n  \"investments\": []\n}\n", string(out))
}
