package startup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDependency struct {
	name      string
	dependsOn []string
	failures  int
	log       *[]string
}

func (d *fakeDependency) GetName() string     { return d.name }
func (d *fakeDependency) DependsOn() []string { return d.dependsOn }

func (d *fakeDependency) Start(_ context.Context) error {
	if d.failures > 0 {
		d.failures--
		return errors.New(d.name + " unavailable")
	}
	*d.log = append(*d.log, "start "+d.name)
	return nil
}

func (d *fakeDependency) Stop(_ context.Context) error {
	*d.log = append(*d.log, "stop "+d.name)
	return nil
}

func newTestStartup(maxAttempts int) *Startup {
	s := NewStartup(ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}), maxAttempts)
	s.SetBackoffUnit(time.Millisecond)
	return s
}

func TestStartup(t *testing.T) {
	t.Run("should start dependencies before their dependents and stop in reverse", func(t *testing.T) {
		var log []string
		s := newTestStartup(1)
		s.AddDependency(&fakeDependency{name: "migrations", dependsOn: []string{"database"}, log: &log})
		s.AddDependency(&fakeDependency{name: "database", log: &log})
		s.AddDependency(&fakeDependency{name: "kafka", log: &log})

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, []string{"start database", "start migrations", "start kafka"}, log)
		assert.Equal(t, StartupStatusStarted, s.Status("migrations"))

		log = nil
		require.NoError(t, s.Stop(context.Background()))
		assert.Equal(t, []string{"stop kafka", "stop migrations", "stop database"}, log)
		assert.Equal(t, StartupStatusStopped, s.Status("database"))
	})

	t.Run("should retry failed dependencies", func(t *testing.T) {
		var log []string
		s := newTestStartup(3)
		s.AddDependency(&fakeDependency{name: "database", failures: 2, log: &log})

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, []string{"start database"}, log)
	})

	t.Run("should give up after max attempts", func(t *testing.T) {
		var log []string
		s := newTestStartup(2)
		s.AddDependency(&fakeDependency{name: "database", failures: 5, log: &log})

		err := s.Start(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 2 attempts")
		assert.Equal(t, StartupStatusFailed, s.Status("database"))
	})

	t.Run("should fail on unregistered dependencies", func(t *testing.T) {
		var log []string
		s := newTestStartup(1)
		s.AddDependency(&fakeDependency{name: "migrations", dependsOn: []string{"database"}, log: &log})

		err := s.Start(context.Background())
		assert.ErrorContains(t, err, "not registered")
	})

	t.Run("should detect cycles", func(t *testing.T) {
		var log []string
		s := newTestStartup(1)
		s.AddDependency(&fakeDependency{name: "a", dependsOn: []string{"b"}, log: &log})
		s.AddDependency(&fakeDependency{name: "b", dependsOn: []string{"a"}, log: &log})

		err := s.Start(context.Background())
		assert.ErrorContains(t, err, "cycle")
	})
}
