package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	require.Equal(t, "SELECT 1 FROM t WHERE x", Join("SELECT 1", "FROM t", "", "WHERE x"))
	require.Equal(t, "", Join("", "  "))
}

func TestJoinWhere(t *testing.T) {
	require.Equal(t, "WHERE a = $1 AND b = $2", JoinWhere("a = $1", "b = $2"))
	require.Equal(t, "WHERE a = $1", JoinWhere("a = $1", ""))
	require.Equal(t, "", JoinWhere())
}

func TestFormatLimitOffset(t *testing.T) {
	require.Equal(t, "LIMIT 10 OFFSET 20", FormatLimitOffset(10, 20))
	require.Equal(t, "LIMIT 10", FormatLimitOffset(10, 0))
	require.Equal(t, "OFFSET 20", FormatLimitOffset(0, 20))
	require.Equal(t, "", FormatLimitOffset(0, 0))
	require.Equal(t, "", FormatLimitOffset(-5, -1))
}
