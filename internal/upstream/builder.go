package upstream

import (
	"context"
	"fmt"

	apperrors "chaton2api-go/internal/errors"
	"chaton2api-go/internal/signer"
	"chaton2api-go/internal/translator"
)

// SignedRequest is a serialized upstream body plus the credential over it.
type SignedRequest struct {
	Body       []byte
	Credential signer.Credential
}

// Builder assembles upstream bodies and signs them.
type Builder struct {
	signer signer.Signer
}

func NewBuilder(s signer.Signer) *Builder {
	return &Builder{signer: s}
}

// Build serializes norm and signs the exact bytes. Signing failures are final.
func (b *Builder) Build(ctx context.Context, norm *translator.NormalizedRequest) (*SignedRequest, error) {
	body, err := BuildChatPayload(norm)
	if err != nil {
		return nil, fmt.Errorf("encode upstream body: %w", err)
	}
	return b.sign(ctx, body)
}

// BuildImagePrompt prepares the drawing request for the image endpoint.
func (b *Builder) BuildImagePrompt(ctx context.Context, prompt, size string) (*SignedRequest, error) {
	body, err := BuildImagePayload(prompt, size)
	if err != nil {
		return nil, fmt.Errorf("encode image body: %w", err)
	}
	return b.sign(ctx, body)
}

func (b *Builder) sign(ctx context.Context, body []byte) (*SignedRequest, error) {
	if b.signer == nil {
		return nil, apperrors.ErrCredential
	}
	cred, err := b.signer.Sign(ctx, body)
	if err != nil {
		return nil, err
	}
	return &SignedRequest{Body: body, Credential: cred}, nil
}
