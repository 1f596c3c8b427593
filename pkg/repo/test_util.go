package repo

import (
	"testing"
)

// MockRepo returns a default repo rooted in a temp dir with test friendly log settings
func MockRepo(t testing.TB) *Repo {
	rep := Default(t.TempDir())
	rep.Config.Log.Level = "debug"
	rep.Config.Log.EnableColor = false
	rep.Config.Monitor.Enable = false
	return rep
}
