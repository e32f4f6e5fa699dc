//go:build unit

package dispatch

import (
	"context"
	"testing"

	"prefixctl/internal/mock"
	"prefixctl/internal/pkg/roster"
	"prefixctl/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func intPtr(n int) *int { return &n }

func TestDispatcher_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("MiddleTargetFailureDoesNotAbortRoster", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		local := mock.NewMockReconfigurer(ctrl)
		remote := mock.NewMockRemoteRunner(ctrl)

		targets := []roster.Target{
			{Identifier: "web-01", Kind: roster.TargetRemote},
			{Identifier: "web-02", Kind: roster.TargetRemote},
			{Identifier: "web-03", Kind: roster.TargetRemote},
		}

		gomock.InOrder(
			remote.EXPECT().Run(ctx, "web-01", 25).Return(types.ReconfigurationOutcome{
				OldPrefixLength: intPtr(24), NewPrefixLength: 25, Kind: types.OutcomeSuccess,
			}, nil),
			remote.EXPECT().Run(ctx, "web-02", 25).Return(types.ReconfigurationOutcome{
				NewPrefixLength: 25, Kind: types.OutcomeNoAdapterFound,
			}, nil),
			remote.EXPECT().Run(ctx, "web-03", 25).Return(types.ReconfigurationOutcome{
				OldPrefixLength: intPtr(24), NewPrefixLength: 25, Kind: types.OutcomeSuccess,
			}, nil),
		)

		fleetReport := NewDispatcher(local, remote).Run(ctx, targets, 25)
		require.Equal(t, 3, fleetReport.Len())

		outcomes := fleetReport.Outcomes()
		assert.Equal(t, "web-02", outcomes[1].Target)
		assert.Equal(t, types.OutcomeNoAdapterFound, outcomes[1].Kind)
		assert.Equal(t, types.OutcomeSuccess, outcomes[0].Kind)
		assert.Equal(t, types.OutcomeSuccess, outcomes[2].Kind)
	})

	t.Run("LocalTargetRunsInProcess", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		local := mock.NewMockReconfigurer(ctrl)
		remote := mock.NewMockRemoteRunner(ctrl)

		local.EXPECT().Reconfigure(ctx, 24).Return(types.ReconfigurationOutcome{
			OldPrefixLength: intPtr(24), NewPrefixLength: 24, Kind: types.OutcomeSkippedAlreadySet,
		})

		targets := []roster.Target{{Identifier: "localhost", Kind: roster.TargetLocal}}
		fleetReport := NewDispatcher(local, remote).Run(ctx, targets, 24)

		require.Equal(t, 1, fleetReport.Len())
		outcome := fleetReport.Outcomes()[0]
		assert.Equal(t, "localhost", outcome.Target)
		assert.Equal(t, types.OutcomeSkippedAlreadySet, outcome.Kind)
	})

	t.Run("ChannelFailureIsConnectionFailed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		local := mock.NewMockReconfigurer(ctrl)
		remote := mock.NewMockRemoteRunner(ctrl)

		remote.EXPECT().Run(ctx, "unreachable-01", 25).
			Return(types.ReconfigurationOutcome{}, assert.AnError)
		remote.EXPECT().Run(ctx, "web-01", 25).
			Return(types.ReconfigurationOutcome{NewPrefixLength: 25, Kind: types.OutcomeSuccess}, nil)

		targets := []roster.Target{
			{Identifier: "unreachable-01", Kind: roster.TargetRemote},
			{Identifier: "web-01", Kind: roster.TargetRemote},
		}
		fleetReport := NewDispatcher(local, remote).Run(ctx, targets, 25)

		require.Equal(t, 2, fleetReport.Len())
		outcome := fleetReport.Outcomes()[0]
		assert.Equal(t, types.OutcomeConnectionFailed, outcome.Kind)
		assert.Equal(t, assert.AnError.Error(), outcome.Message)
		assert.Equal(t, types.OutcomeSuccess, fleetReport.Outcomes()[1].Kind)
	})

	t.Run("PanicIsIsolatedPerTarget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		local := mock.NewMockReconfigurer(ctrl)
		remote := mock.NewMockRemoteRunner(ctrl)

		remote.EXPECT().Run(ctx, "web-01", 25).
			DoAndReturn(func(context.Context, string, int) (types.ReconfigurationOutcome, error) {
				panic("unexpected adapter state")
			})
		remote.EXPECT().Run(ctx, "web-02", 25).
			Return(types.ReconfigurationOutcome{NewPrefixLength: 25, Kind: types.OutcomeSuccess}, nil)

		targets := []roster.Target{
			{Identifier: "web-01", Kind: roster.TargetRemote},
			{Identifier: "web-02", Kind: roster.TargetRemote},
		}
		fleetReport := NewDispatcher(local, remote).Run(ctx, targets, 25)

		require.Equal(t, 2, fleetReport.Len())
		assert.Equal(t, types.OutcomeError, fleetReport.Outcomes()[0].Kind)
		assert.Contains(t, fleetReport.Outcomes()[0].Message, "panic during reconfiguration")
		assert.Equal(t, types.OutcomeSuccess, fleetReport.Outcomes()[1].Kind)
	})
}
