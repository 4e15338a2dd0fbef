package trustgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"weft/engine/library"
)

func TestIssue(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Issue("alice"))
	require.True(t, s.Issuers["alice"])
	require.EqualValues(t, 100, s.Trust("alice", "alice"))

	err := s.Issue("alice")
	require.Equal(t, library.ErrInvalidOptions, library.KindOf(err))
}

func TestOrganizationsCannotIssue(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.SetOrganization("acme"))
	err := s.Issue("acme")
	require.Equal(t, library.ErrInvalidOptions, library.KindOf(err))
}

func TestIssuersCannotBecomeOrganizations(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Issue("alice"))
	err := s.SetOrganization("alice")
	require.Equal(t, library.ErrInvalidOptions, library.KindOf(err))
}

func TestSetTrustRange(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Issue("alice"))
	require.NoError(t, s.Issue("bob"))
	require.Error(t, s.SetTrust("bob", "alice", -1))
	require.Error(t, s.SetTrust("bob", "alice", 101))
	require.NoError(t, s.SetTrust("bob", "alice", 60))
	require.EqualValues(t, 60, s.Trust("bob", "alice"))
}

func TestSelfTrustIsImmutable(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Issue("alice"))
	err := s.SetTrust("alice", "alice", 50)
	require.Equal(t, library.ErrInvalidOptions, library.KindOf(err))
	require.EqualValues(t, 100, s.Trust("alice", "alice"))
}

func TestOrganizationTrustIsBinary(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Issue("alice"))
	require.NoError(t, s.SetOrganization("acme"))
	require.Error(t, s.SetTrust("acme", "alice", 40))
	require.NoError(t, s.SetTrust("acme", "alice", 100))
	require.NoError(t, s.SetTrust("acme", "alice", 0))
}

func TestRevokingTrustDeletesTheEdge(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Issue("alice"))
	require.NoError(t, s.Issue("bob"))
	require.NoError(t, s.SetTrust("bob", "alice", 50))
	require.NoError(t, s.SetTrust("bob", "alice", 0))
	require.EqualValues(t, 0, s.Trust("bob", "alice"))
	_, ok := s.Limits["bob"]["alice"]
	require.False(t, ok)
}

func TestSetBalance(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Issue("alice"))
	require.Error(t, s.SetBalance("alice", "bob", library.NewAmount(-1)))
	require.Error(t, s.SetBalance("mallory", "bob", library.NewAmount(1)))
	require.NoError(t, s.SetBalance("alice", "bob", library.NewAmount(7)))
	require.True(t, s.Balance("alice", "bob").Equal(library.NewAmount(7)))
}

func TestApplyHop(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Issue("alice"))
	require.NoError(t, s.SetBalance("alice", "alice", library.NewAmount(10)))

	require.Error(t, s.ApplyHop(library.Hop{Issuer: "alice", Src: "alice", Dest: "bob", Amount: library.NewAmount(11)}))

	require.NoError(t, s.ApplyHop(library.Hop{Issuer: "alice", Src: "alice", Dest: "bob", Amount: library.NewAmount(4)}))
	require.True(t, s.Balance("alice", "alice").Equal(library.NewAmount(6)))
	require.True(t, s.Balance("alice", "bob").Equal(library.NewAmount(4)))
}

func TestCloneIsDeep(t *testing.T) {
	s := testGraph(t)
	require.NoError(t, s.SetTrust("bob", "alice", 50))
	clone := s.Clone()
	require.NoError(t, clone.SetTrust("bob", "alice", 10))
	require.NoError(t, clone.SetBalance("alice", "bob", library.NewAmount(99)))
	require.NoError(t, clone.Issue("dave"))

	require.EqualValues(t, 50, s.Trust("bob", "alice"))
	require.True(t, s.Balance("alice", "bob").IsZero())
	require.False(t, s.Issuers["dave"])
}
