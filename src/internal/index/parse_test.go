package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pytoy/src/internal/model"
)

func TestParseDependency_Parenthesized(t *testing.T) {
	dep, ok := ParseDependency("req (>=1.0)")
	require.True(t, ok)
	require.Equal(t, model.Dependency{Name: "req", VersionSpec: ">=1.0"}, dep)
}

func TestParseDependency_ExtrasAndMarker(t *testing.T) {
	dep, ok := ParseDependency("req[extra]; python>'3'")
	require.True(t, ok)
	require.Equal(t, model.Dependency{Name: "req", VersionSpec: "*"}, dep)
}

func TestParseDependency_BareOperator(t *testing.T) {
	dep, ok := ParseDependency("req==2.5")
	require.True(t, ok)
	require.Equal(t, model.Dependency{Name: "req", VersionSpec: "==2.5"}, dep)
}

func TestParseDependency_NoVersion(t *testing.T) {
	dep, ok := ParseDependency("req")
	require.True(t, ok)
	require.Equal(t, model.Dependency{Name: "req", VersionSpec: "*"}, dep)
}

func TestParseDependency_EmptyName(t *testing.T) {
	_, ok := ParseDependency("  ; python>'3'")
	require.False(t, ok)
}

func TestStripOperator(t *testing.T) {
	require.Equal(t, "", StripOperator("*"))
	require.Equal(t, "", StripOperator(""))
	require.Equal(t, "1.2.3", StripOperator("==1.2.3"))
	require.Equal(t, "1.2.3", StripOperator(">=1.2.3"))
	require.Equal(t, "1.2.3", StripOperator("1.2.3"))
}
