package pkg

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodeBody(t *testing.T) {
	body := codeBody("注册验证", "493817", 5*time.Minute)
	assert.Contains(t, body, "493817")
	assert.Contains(t, body, "注册验证")
	assert.Contains(t, body, "5 分钟")
	assert.True(t, strings.HasPrefix(body, "<p>"))
}
