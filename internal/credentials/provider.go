package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/libelle-hq/volunteer-intake/internal/common"
)

// Credentials is the access material the blob store client signs with.
type Credentials struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
}

func (c Credentials) valid() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Provider supplies store credentials with explicit load, refresh and
// persist operations, decoupled from the store clients that use them.
type Provider interface {
	Load(ctx context.Context) (Credentials, error)
	Refresh(ctx context.Context) (Credentials, error)
	Persist(ctx context.Context, creds Credentials) error
}

// StaticProvider serves fixed credentials, typically from environment
// configuration. Persist is a no-op.
type StaticProvider struct {
	creds Credentials
}

func NewStaticProvider(accessKeyID, secretAccessKey string) *StaticProvider {
	return &StaticProvider{creds: Credentials{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
	}}
}

func (p *StaticProvider) Load(context.Context) (Credentials, error) {
	if !p.creds.valid() {
		return Credentials{}, common.ErrAuthMissing
	}
	return p.creds, nil
}

func (p *StaticProvider) Refresh(ctx context.Context) (Credentials, error) {
	return p.Load(ctx)
}

func (p *StaticProvider) Persist(context.Context, Credentials) error {
	return nil
}

// FileProvider reads and writes a JSON credential file, caching the
// last successful load. Refresh re-reads the file.
type FileProvider struct {
	path string

	mu     sync.Mutex
	cached *Credentials
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Load(ctx context.Context) (Credentials, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != nil {
		return *p.cached, nil
	}
	return p.readLocked()
}

func (p *FileProvider) Refresh(ctx context.Context) (Credentials, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readLocked()
}

func (p *FileProvider) Persist(_ context.Context, creds Credentials) error {
	if !creds.valid() {
		return common.ErrAuthMissing
	}
	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := os.WriteFile(p.path, raw, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	p.cached = &creds
	return nil
}

func (p *FileProvider) readLocked() (Credentials, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", common.ErrAuthMissing, err)
	}
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("%w: parse credential file: %v", common.ErrAuthMissing, err)
	}
	if !creds.valid() {
		return Credentials{}, common.ErrAuthMissing
	}
	p.cached = &creds
	return creds, nil
}

// FromConfig picks the provider the blob configuration implies:
// static env credentials when present, a credential file otherwise.
func FromConfig(cfg common.BlobConfig) Provider {
	if cfg.AccessKeyID != "" {
		return NewStaticProvider(cfg.AccessKeyID, cfg.SecretAccessKey)
	}
	return NewFileProvider(cfg.CredentialsFile)
}
