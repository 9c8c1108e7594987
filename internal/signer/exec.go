package signer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"chaton2api-go/internal/constants"
	apperrors "chaton2api-go/internal/errors"
	"github.com/kballard/go-shellquote"
	"github.com/tidwall/gjson"
)

const maxStderrInError = 512

// Exec runs a helper command per request. The body is written to stdin and
// the credential is read from stdout, either as
// {"authorization":"...","date":"..."} or as two lines in that order.
type Exec struct {
	argv    []string
	timeout time.Duration
}

func NewExec(command string, timeout time.Duration) (*Exec, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse signer command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("signer command is empty")
	}
	if timeout <= 0 {
		timeout = constants.SignerTimeout
	}
	return &Exec{argv: argv, timeout: timeout}, nil
}

func (e *Exec) Sign(ctx context.Context, body []byte) (Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.argv[0], e.argv[1:]...)
	cmd.Stdin = bytes.NewReader(body)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// grandchildren may keep the pipes open after the kill
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Credential{}, fmt.Errorf("%w: signer timed out after %s", apperrors.ErrCredential, e.timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderrInError {
			msg = msg[:maxStderrInError]
		}
		return Credential{}, fmt.Errorf("%w: %v: %s", apperrors.ErrCredential, err, msg)
	}

	cred := ParseOutput(stdout.Bytes())
	if !cred.valid() {
		return Credential{}, fmt.Errorf("%w: signer produced no credential", apperrors.ErrCredential)
	}
	return cred, nil
}

// ParseOutput reads a credential from helper output. Missing values stay empty.
func ParseOutput(out []byte) Credential {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return Credential{}
	}
	if gjson.ValidBytes(out) {
		if root := gjson.ParseBytes(out); root.IsObject() {
			return Credential{
				Authorization: strings.TrimSpace(root.Get("authorization").String()),
				Date:          strings.TrimSpace(root.Get("date").String()),
			}
		}
	}

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(string(out), "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	var cred Credential
	if len(lines) > 0 {
		cred.Authorization = lines[0]
	}
	if len(lines) > 1 {
		cred.Date = lines[1]
	}
	return cred
}
