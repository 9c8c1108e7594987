package signer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chaton2api-go/internal/config"
	apperrors "chaton2api-go/internal/errors"
	mw "chaton2api-go/internal/middleware"
)

// Credential is what the upstream expects in the Authorization and Date headers.
type Credential struct {
	Authorization string
	Date          string
}

func (c Credential) valid() bool {
	return strings.TrimSpace(c.Authorization) != "" && strings.TrimSpace(c.Date) != ""
}

// Signer produces a credential for an exact serialized request body.
type Signer interface {
	Sign(ctx context.Context, body []byte) (Credential, error)
}

// Func adapts a plain function to Signer.
type Func func(ctx context.Context, body []byte) (Credential, error)

func (f Func) Sign(ctx context.Context, body []byte) (Credential, error) {
	cred, err := f(ctx, body)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", apperrors.ErrCredential, err)
	}
	if !cred.valid() {
		return Credential{}, apperrors.ErrCredential
	}
	return cred, nil
}

// Static returns the same credential for every body. Development only.
type Static struct {
	Credential Credential
}

func (s Static) Sign(context.Context, []byte) (Credential, error) {
	if !s.Credential.valid() {
		return Credential{}, apperrors.ErrCredential
	}
	return s.Credential, nil
}

type instrumented struct {
	label string
	inner Signer
}

// Instrument records signer outcomes under label.
func Instrument(label string, s Signer) Signer {
	return &instrumented{label: label, inner: s}
}

func (i *instrumented) Sign(ctx context.Context, body []byte) (Credential, error) {
	cred, err := i.inner.Sign(ctx, body)
	mw.RecordSigner(i.label, err)
	return cred, err
}

// New builds the configured signer.
func New(cfg config.SignerConfig) (Signer, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	switch mode {
	case "static":
		return Instrument(mode, Static{Credential: Credential{
			Authorization: cfg.StaticAuthorization,
			Date:          cfg.StaticDate,
		}}), nil
	case "exec", "":
		timeout := time.Duration(cfg.TimeoutSec) * time.Second
		ex, err := NewExec(cfg.Command, timeout)
		if err != nil {
			return nil, err
		}
		return Instrument("exec", ex), nil
	default:
		return nil, fmt.Errorf("unsupported signer mode: %s", cfg.Mode)
	}
}
