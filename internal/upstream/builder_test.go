package upstream

import (
	"context"
	"errors"
	"testing"

	"chaton2api-go/internal/constants"
	apperrors "chaton2api-go/internal/errors"
	"chaton2api-go/internal/signer"
	"chaton2api-go/internal/translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func sampleRequest() *translator.NormalizedRequest {
	return &translator.NormalizedRequest{
		Model:       "gpt-4o",
		Temperature: 0.6,
		TopP:        0.9,
		MaxTokens:   8000,
		HasImage:    true,
		SourceTag:   constants.SourceImageUpload,
		Messages: []translator.ChatMessage{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "look ![Image](http://gw/images/a.png)", Images: []translator.ImageRef{{URL: "http://gw/images/a.png"}}},
		},
	}
}

func TestBuildChatPayloadShape(t *testing.T) {
	body, err := BuildChatPayload(sampleRequest())
	require.NoError(t, err)

	want := `{"function_image_gen":true,"function_web_search":true,"max_tokens":8000,"model":"gpt-4o",` +
		`"source":"chat/image_upload","temperature":0.6,"top_p":0.9,"messages":[` +
		`{"role":"system","content":"be brief"},` +
		`{"role":"user","content":"look ![Image](http://gw/images/a.png)","images":[{"data":"http://gw/images/a.png"}]}]}`
	assert.Equal(t, want, string(body))

	again, err := BuildChatPayload(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, body, again)
}

func TestBuildChatPayloadTextOnly(t *testing.T) {
	norm := &translator.NormalizedRequest{
		Model: "claude", MaxTokens: 10,
		Messages: []translator.ChatMessage{{Role: "user", Content: "hi"}},
	}
	body, err := BuildChatPayload(norm)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(body, "function_image_gen").Bool())
	assert.Equal(t, constants.SourceChat, gjson.GetBytes(body, "source").String())
	assert.False(t, gjson.GetBytes(body, "messages.0.images").Exists())
}

func TestBuilderSignsExactBody(t *testing.T) {
	var signed []byte
	b := NewBuilder(signer.Func(func(_ context.Context, body []byte) (signer.Credential, error) {
		signed = append([]byte(nil), body...)
		return signer.Credential{Authorization: "Bearer x", Date: "now"}, nil
	}))
	req, err := b.Build(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, signed, req.Body)
	assert.Equal(t, "Bearer x", req.Credential.Authorization)
}

func TestBuilderSignerFailure(t *testing.T) {
	b := NewBuilder(signer.Func(func(context.Context, []byte) (signer.Credential, error) {
		return signer.Credential{}, nil
	}))
	_, err := b.Build(context.Background(), sampleRequest())
	if !errors.Is(err, apperrors.ErrCredential) {
		t.Fatalf("expected credential error, got %v", err)
	}

	_, err = NewBuilder(nil).BuildImagePrompt(context.Background(), "a cat", "")
	require.ErrorIs(t, err, apperrors.ErrCredential)
}

func TestBuildImagePayload(t *testing.T) {
	body, err := BuildImagePayload("a cat", "1792x1024")
	require.NoError(t, err)
	root := gjson.ParseBytes(body)
	assert.True(t, root.Get("function_image_gen").Bool())
	assert.True(t, root.Get("function_web_search").Bool())
	assert.Equal(t, "16:9", root.Get("image_aspect_ratio").String())
	assert.Equal(t, "photographic", root.Get("image_style").String())
	assert.Equal(t, int64(8000), root.Get("max_tokens").Int())
	assert.Equal(t, "gpt-4o", root.Get("model").String())
	assert.Equal(t, "chat/pro_image", root.Get("source").String())
	assert.Equal(t, "system", root.Get("messages.0.role").String())
	assert.Equal(t, constants.ImageGenSystemPrompt, root.Get("messages.0.content").String())
	assert.Equal(t, "Draw: a cat", root.Get("messages.1.content").String())

	keys := []string{}
	root.ForEach(func(k, _ gjson.Result) bool { keys = append(keys, k.String()); return true })
	assert.Equal(t, []string{"function_image_gen", "function_web_search", "image_aspect_ratio", "image_style", "max_tokens", "messages", "model", "source"}, keys)
}

func TestAspectFromSize(t *testing.T) {
	cases := map[string]string{
		"":          "1:1",
		"1024x1024": "1:1",
		"1792x1024": "16:9",
		"1024x1792": "9:16",
		"256X512":   "9:16",
		"16:9":      "16:9",
		"huge":      "1:1",
		"0x10":      "1:1",
	}
	for in, want := range cases {
		assert.Equal(t, want, AspectFromSize(in), in)
	}
}
