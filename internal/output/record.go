// Package output renders generation results as structured records. The
// generator core never writes files; this is the serialization boundary.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"password-forge/internal/password"
)

// Record is the serialized form of one generation run: the produced
// password or batch plus the parameters that produced it.
type Record struct {
	ID        string   `json:"id"`
	Password  string   `json:"password,omitempty"`
	Passwords []string `json:"passwords,omitempty"`
	Category  string   `json:"category"`
	Strength  string   `json:"strength"`
	Length    int      `json:"length"`
	Count     int      `json:"count"`
	CreatedAt string   `json:"created_at"`
}

// NewRecord assembles a record for a batch of results. A single result is
// stored in the password field, larger batches in the passwords list,
// matching the original file layout consumers already parse.
func NewRecord(results []string, category password.Category, strength password.Strength, length int) *Record {
	rec := &Record{
		ID:        uuid.NewString(),
		Category:  category.String(),
		Strength:  strength.String(),
		Length:    length,
		Count:     len(results),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if len(results) == 1 {
		rec.Password = results[0]
	} else {
		rec.Passwords = results
	}
	return rec
}

// Marshal renders the record as indented JSON.
func (r *Record) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return append(data, '\n'), nil
}

// Write renders the record to the writer.
func (r *Record) Write(w io.Writer) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Save writes the record to path with owner-only permissions. When
// passphrase is non-empty the file is sealed (see Seal) instead of stored
// as plaintext JSON.
func (r *Record) Save(path string, passphrase []byte) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if len(passphrase) > 0 {
		data, err = Seal(data, passphrase)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to save record to %s: %w", path, err)
	}
	return nil
}

// LoadRecord reads a record from path, unsealing it first when a
// passphrase is provided.
func LoadRecord(path string, passphrase []byte) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record from %s: %w", path, err)
	}
	if IsSealed(data) {
		if len(passphrase) == 0 {
			return nil, fmt.Errorf("record %s is sealed; a passphrase is required", path)
		}
		data, err = Open(data, passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to unseal record %s: %w", path, err)
		}
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", path, err)
	}
	return &rec, nil
}
