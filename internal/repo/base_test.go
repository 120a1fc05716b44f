package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestBaseScopesAndRebinds(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	base := NewBase(db)
	require.NotNil(t, base.DB(context.Background()))
	require.NotNil(t, base.DB(nil))

	assert.Equal(t, base, base.Rebind(nil))

	tx := db.Session(&gorm.Session{})
	rebound := base.Rebind(tx)
	assert.Same(t, tx, rebound.db)
}
