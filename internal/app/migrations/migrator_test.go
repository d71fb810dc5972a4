package migrations

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrdersByVersion(t *testing.T) {
	src := fstest.MapFS{
		"0002_b.sql": {Data: []byte("SELECT 2;")},
		"0001_a.sql": {Data: []byte("SELECT 1;")},
		"README.md":  {Data: []byte("ignored")},
	}

	migs, err := Load(src)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, "0001", migs[0].Version)
	assert.Equal(t, "0002_b.sql", migs[1].Name)
}

func TestLoadRejectsDuplicateVersions(t *testing.T) {
	src := fstest.MapFS{
		"0001_a.sql": {Data: []byte("SELECT 1;")},
		"0001_b.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := Load(src)
	assert.ErrorContains(t, err, "duplicate migration version 0001")
}

func TestEmbeddedSchema(t *testing.T) {
	migs, err := Load(Embedded())
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	var all strings.Builder
	for _, m := range migs {
		all.WriteString(m.SQL)
	}
	schema := all.String()

	for _, table := range []string{
		"users", "profiles", "auth_tokens", "otps", "materials", "events", "blogs",
		"blog_comments", "leaders", "notifications", "communities", "groups",
		"group_followers", "group_memberships", "group_messages", "direct_messages",
		"blocked_users", "products",
	} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.Contains(t, schema, "users_username_key")
	assert.Contains(t, schema, "users_email_key")
	assert.Contains(t, schema, "group_memberships_user_group_key")
}
