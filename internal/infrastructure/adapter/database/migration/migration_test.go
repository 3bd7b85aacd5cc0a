package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingSteps(t *testing.T) {
	m := &MigrationManager{indexMgr: &IndexManager{}}
	steps := m.steps()

	versions := func(ss []step) []string {
		var out []string
		for _, s := range ss {
			out = append(out, s.version)
		}
		return out
	}

	t.Run("Fresh database", func(t *testing.T) {
		assert.Equal(t, []string{"1.0.0", "1.1.0"}, versions(pendingSteps("", steps)))
	})

	t.Run("Partially migrated", func(t *testing.T) {
		assert.Equal(t, []string{"1.1.0"}, versions(pendingSteps("1.0.0", steps)))
	})

	t.Run("Up to date", func(t *testing.T) {
		assert.Empty(t, pendingSteps(CurrentSchemaVersion, steps))
	})

	t.Run("Unknown version reapplies everything", func(t *testing.T) {
		assert.Len(t, pendingSteps("0.9.0", steps), len(steps))
	})

	t.Run("Last step is the current version", func(t *testing.T) {
		assert.Equal(t, CurrentSchemaVersion, steps[len(steps)-1].version)
	})
}
