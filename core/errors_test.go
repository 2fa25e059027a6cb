package core

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EMISSING, "document has no %s", "body")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "document has no body", UserMessage(err))
	assert.Equal(t, "[122] document has no body: not found", err.Error())
	//
	wrapped := fmt.Errorf("enable: %w", err)
	assert.Equal(t, EMISSING, Code(wrapped))
	assert.Equal(t, "document has no body", UserMessage(wrapped))
	//
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
}

func TestWrapError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := WrapError(cause, EINVALID, "cannot read %s", "x.toml")
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "[123] cannot read x.toml: unexpected EOF", err.Error())
	//
	err = WrapError(nil, EDETACHED, "")
	assert.Equal(t, "[124] detached", err.Error())
	assert.Equal(t, "detached", UserMessage(err))
}

func TestUserError(t *testing.T) {
	var b bytes.Buffer
	UserError(&b, Error(EINVALID, "bold percentage 90%% outside 30%%…70%%"))
	assert.Equal(t, "[123] bold percentage 90% outside 30%…70%\n", b.String())
	b.Reset()
	UserError(&b, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", b.String())
	b.Reset()
	UserError(&b, nil)
	assert.Empty(t, b.String())
}
