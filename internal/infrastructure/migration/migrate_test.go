package migration

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/database/stub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStubMigrator(t *testing.T) (*Migrator, *stub.Stub) {
	t.Helper()
	driver, err := stub.WithInstance(nil, &stub.Config{})
	require.NoError(t, err)

	m, err := newMigrator(driver, "stub", "", zaptest.NewLogger(t))
	require.NoError(t, err)
	return m, driver.(*stub.Stub)
}

func TestMigrator_EmbeddedSource(t *testing.T) {
	m, db := newStubMigrator(t)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	version, dirty, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(20260901094000), version)
	assert.False(t, dirty)
	assert.Len(t, db.MigrationSequence, 5)
	assert.Contains(t, string(db.LastRunMigration), "CREATE TABLE")

	// already current
	require.NoError(t, m.Up())
	assert.Len(t, db.MigrationSequence, 5)
}

func TestMigrator_StepsAndForce(t *testing.T) {
	m, _ := newStubMigrator(t)

	require.NoError(t, m.Steps(2))
	version, _, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(20260901091000), version)

	require.NoError(t, m.Steps(-1))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(20260901090000), version)

	require.NoError(t, m.Force(20260901092000))
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(20260901092000), version)
	assert.False(t, dirty)

	require.NoError(t, m.Close())
}

func TestNewMigrator_MissingDirectory(t *testing.T) {
	driver, err := stub.WithInstance(nil, &stub.Config{})
	require.NoError(t, err)

	_, err = newMigrator(driver, "stub", t.TempDir()+"/nope", zaptest.NewLogger(t))
	assert.Error(t, err)
}
