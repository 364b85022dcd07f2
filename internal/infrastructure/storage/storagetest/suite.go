// Package storagetest is a conformance suite every roster storage adapter runs
// against a real (or embedded) instance of its backend.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"roster/internal/core/apperror"
	"roster/internal/core/tx"
	"roster/internal/domain/commands"
	"roster/internal/domain/roster"
)

// Backend is what the suite needs from an adapter.
type Backend interface {
	roster.Backend
	roster.TeamSeeder
}

// Suite checks the unit-of-work and reader contracts.
type Suite struct {
	suite.Suite

	// Open returns a fresh, empty backend. Cleanup belongs on t.
	Open func(t *testing.T) Backend

	backend Backend
	ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.backend = s.Open(s.T())
	s.Require().NoError(s.backend.SeedTeam(s.ctx, roster.Team{ID: "T1", Name: "Lions", MissingPlayers: 1}))
	s.Require().NoError(s.backend.SeedTeam(s.ctx, roster.Team{ID: "T2", Name: "Tigers", MissingPlayers: 0}))
}

func (s *Suite) begin() roster.UnitOfWork {
	u, err := s.backend.Begin(s.ctx)
	s.Require().NoError(err)
	return u
}

func (s *Suite) TestTeamByID() {
	team, err := s.backend.TeamByID(s.ctx, "T1")
	s.Require().NoError(err)
	s.Require().NotNil(team)
	s.Equal(roster.Team{ID: "T1", Name: "Lions", MissingPlayers: 1}, *team)

	team, err = s.backend.TeamByID(s.ctx, "ghost")
	s.NoError(err)
	s.Nil(team)
}

func (s *Suite) TestSeedTeamReplaces() {
	s.Require().NoError(s.backend.SeedTeam(s.ctx, roster.Team{ID: "T1", Name: "Lions", MissingPlayers: 7}))

	team, err := s.backend.TeamByID(s.ctx, "T1")
	s.Require().NoError(err)
	s.Equal(uint64(7), team.MissingPlayers)
}

func (s *Suite) TestPlayerByIDAbsent() {
	player, err := s.backend.PlayerByID(s.ctx, "nobody")
	s.NoError(err)
	s.Nil(player)
}

func (s *Suite) TestWriteInvisibleUntilCommit() {
	u := s.begin()
	player, err := u.CreatePlayer(s.ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	s.Require().NoError(err)
	s.NotEmpty(player.ID)
	s.Equal("Bob", player.Name)
	s.Equal("T1", player.TeamID)

	before, err := s.backend.PlayerByID(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Nil(before)

	s.Require().NoError(u.Commit(s.ctx))

	after, err := s.backend.PlayerByID(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Require().NotNil(after)
	s.Equal(player, *after)
}

func (s *Suite) TestRollbackDiscardsWrite() {
	u := s.begin()
	player, err := u.CreatePlayer(s.ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	s.Require().NoError(err)
	s.Require().NoError(u.Rollback(s.ctx))

	got, err := s.backend.PlayerByID(s.ctx, player.ID)
	s.NoError(err)
	s.Nil(got)
}

func (s *Suite) TestFinishedUnitOfWorkIsUnusable() {
	u := s.begin()
	s.Require().NoError(u.Commit(s.ctx))

	_, err := u.CreatePlayer(s.ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	s.ErrorIs(err, tx.ErrDone)
	s.ErrorIs(u.Commit(s.ctx), tx.ErrDone)
	s.NoError(u.Rollback(s.ctx))
}

func (s *Suite) TestUnitsOfWorkAreIndependent() {
	first := s.begin()
	second := s.begin()

	kept, err := first.CreatePlayer(s.ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	s.Require().NoError(err)
	s.Require().NoError(first.Commit(s.ctx))

	dropped, err := second.CreatePlayer(s.ctx, roster.PlayerInput{Name: "Ann", TeamID: "T1"})
	s.Require().NoError(err)
	s.Require().NoError(second.Rollback(s.ctx))

	got, err := s.backend.PlayerByID(s.ctx, kept.ID)
	s.Require().NoError(err)
	s.NotNil(got)

	got, err = s.backend.PlayerByID(s.ctx, dropped.ID)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *Suite) TestCreatePlayerCommand() {
	cmd := commands.NewCreatePlayer(s.backend, s.backend)

	bob, err := cmd.Execute(s.ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	s.Require().NoError(err)
	s.Equal("Bob", bob.Name)
	s.Equal("T1", bob.TeamID)
	s.NotEmpty(bob.ID)

	stored, err := s.backend.PlayerByID(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(bob, *stored)

	_, err = cmd.Execute(s.ctx, roster.PlayerInput{Name: "Ann", TeamID: "T2"})
	s.True(apperror.IsTeamFull(err), "got %v", err)

	_, err = cmd.Execute(s.ctx, roster.PlayerInput{Name: "Cid", TeamID: "ghost"})
	s.True(apperror.IsTeamNotFound(err), "got %v", err)

	// The slot count is never decremented, so the same input succeeds again
	// and produces a second, distinct player.
	again, err := cmd.Execute(s.ctx, roster.PlayerInput{Name: "Bob", TeamID: "T1"})
	s.Require().NoError(err)
	s.NotEqual(bob.ID, again.ID)
}
