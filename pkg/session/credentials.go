package session

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Credentials is the durable session state: the serialized user and both
// tokens. The three values are valid only together; anything partial is
// treated as corrupt.
type Credentials struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (c *Credentials) complete() bool {
	return c != nil && c.User != nil && c.User.ID != "" && c.AccessToken != "" && c.RefreshToken != ""
}

// CredentialsFile persists credentials in a single file so the group is
// written and cleared atomically (temp file + rename).
type CredentialsFile struct {
	path string
}

func NewCredentialsFile(dir string) *CredentialsFile {
	return &CredentialsFile{path: filepath.Join(dir, "credentials.json")}
}

// Load reads the persisted credentials. A missing file means no session.
// Unparsable or partial contents are discarded, the file cleared, and no
// session returned; corrupt persisted state must not be trusted.
func (f *CredentialsFile) Load() (*Credentials, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	creds := &Credentials{}
	if err := json.Unmarshal(data, creds); err != nil || !creds.complete() {
		if clearErr := f.Clear(); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}

	return creds, nil
}

// Save writes the full credential group. Incomplete credentials are rejected
// so the file can never hold partial state.
func (f *CredentialsFile) Save(creds *Credentials) error {
	if !creds.complete() {
		return errors.New("refusing to persist partial credentials")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.WithStack(err)
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return errors.WithStack(err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.WithStack(err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Clear removes the persisted group. Clearing an absent file is fine.
func (f *CredentialsFile) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.WithStack(err)
	}
	return nil
}
