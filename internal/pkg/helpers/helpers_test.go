package helpers

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

func TestRequestBaseURL(t *testing.T) {
	r := httptest.NewRequest("GET", "/materials/1/2/3/", nil)
	r.Host = "api.tu.ac"
	assert.Equal(t, "http://api.tu.ac", RequestBaseURL(r))

	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://api.tu.ac", RequestBaseURL(r))

	r.TLS = nil
	r.Header.Set("X-Forwarded-Proto", "HTTPS, http")
	assert.Equal(t, "https://api.tu.ac", RequestBaseURL(r))
}

func TestAbsoluteURL(t *testing.T) {
	ctx := WithBaseURL(context.Background(), "http://localhost:8000/")
	assert.Equal(t, "http://localhost:8000/media/blogs/a.png", AbsoluteURL(ctx, "/media/blogs/a.png"))
	assert.Equal(t, "", AbsoluteURL(ctx, ""))
	assert.Equal(t, "/media/x.png", AbsoluteURL(context.Background(), "media/x.png"))
}

func TestParamParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?university_id=4&campus_id=abc&empty=", nil)
	c.Params = gin.Params{{Key: "group_id", Value: "12"}, {Key: "bad", Value: "-1"}}

	id, err := ParseIDParam(c, "group_id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = ParseIDParam(c, "bad")
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	uni, err := OptionalInt64Query(c, "university_id")
	require.NoError(t, err)
	require.NotNil(t, uni)
	assert.Equal(t, int64(4), *uni)

	none, err := OptionalInt64Query(c, "empty")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = OptionalInt64Query(c, "campus_id")
	assert.Error(t, err)

	_, err = RequiredInt64Query(c, "sender_id")
	assert.EqualError(t, err, "sender_id is required")
}

func TestParseDurationAndDate(t *testing.T) {
	assert.Equal(t, 15*time.Minute, ParseDuration("15m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("nope", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
	assert.Equal(t, time.Duration(0), ParseDuration("0", time.Hour))

	d, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.May, d.Month())
}
