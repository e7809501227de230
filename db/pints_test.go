package db

import (
	"testing"
	"time"

	"pintdiary/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPintCursorRoundTrip(t *testing.T) {
	pint := models.Pint{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Date(2026, 8, 30, 21, 15, 0, 123456789, time.UTC),
	}

	cursor := EncodePintCursor(pint)
	if cursor == "" {
		t.Fatal("EncodePintCursor() returned empty cursor")
	}

	boundary, id, err := DecodePintCursor(cursor)
	if err != nil {
		t.Fatalf("DecodePintCursor() error = %v", err)
	}
	if !boundary.Equal(pint.CreatedAt) {
		t.Errorf("DecodePintCursor() boundary = %v, want %v", boundary, pint.CreatedAt)
	}
	if id != pint.ID {
		t.Errorf("DecodePintCursor() id = %v, want %v", id, pint.ID)
	}
}

func TestDecodePintCursorRejectsGarbage(t *testing.T) {
	cases := []string{
		"not-base64!!",
		"aGVsbG8=",         // valid base64, no separator
		"MTIzNDU2OmJhZA==", // bad object id
	}
	for _, c := range cases {
		if _, _, err := DecodePintCursor(c); err == nil {
			t.Errorf("DecodePintCursor(%q) should fail", c)
		}
	}
}

func TestExtractDBName(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/pints", "pints"},
		{"mongodb://localhost:27017", "pintdiary"},
		{"mongodb://localhost:27017/", "pintdiary"},
	}
	for _, c := range cases {
		if got := extractDBName(c.uri); got != c.want {
			t.Errorf("extractDBName(%q) = %q, want %q", c.uri, got, c.want)
		}
	}
}
