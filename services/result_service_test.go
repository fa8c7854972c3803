package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/atletica-scoreboard/brackets"
	"github.com/Dosada05/atletica-scoreboard/live"
	"github.com/Dosada05/atletica-scoreboard/models"
)

const (
	testCompetitionID = 1
	futsalID          = 10
	xadrezID          = 11
	otherCompModality = 12
)

type resultFixture struct {
	svc         ResultService
	results     *fakeResultRepo
	modalities  *fakeModalityRepo
	notifier    *recordingNotifier
	broadcaster *recordingBroadcaster
}

func newResultFixture(t *testing.T, txCount int, commit bool) *resultFixture {
	t.Helper()
	db, mock := newTxDB(t, txCount, commit)
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })

	athletics := make([]models.Athletic, 0, 8)
	for i := 1; i <= 8; i++ {
		athletics = append(athletics, models.Athletic{ID: i, Name: string(rune('A' + i - 1))})
	}

	f := &resultFixture{
		results: newFakeResultRepo(),
		modalities: newFakeModalityRepo(
			models.Modality{ID: futsalID, CompetitionID: testCompetitionID, Name: "Futsal", Gender: models.GenderMale, Status: models.ModalityPending},
			models.Modality{ID: xadrezID, CompetitionID: testCompetitionID, Name: "Xadrez", Gender: models.GenderMixed, Status: models.ModalityPending},
			models.Modality{ID: otherCompModality, CompetitionID: 2, Name: "Judô", Gender: models.GenderFemale, Status: models.ModalityPending},
		),
		notifier:    &recordingNotifier{},
		broadcaster: &recordingBroadcaster{},
	}
	f.svc = NewResultService(db, f.results, f.modalities, newFakeAthleticRepo(athletics...), f.notifier, f.broadcaster, nil, discardLogger())
	return f
}

func id(v int) *int { return &v }

func playedBracket() brackets.Snapshot {
	return brackets.Snapshot{
		Quarterfinals: [4]brackets.Match{
			{Slot1: id(1), Slot2: id(2), Winner: id(1)},
			{Slot1: id(3), Slot2: id(4), Winner: id(4)},
			{Slot1: id(5), Slot2: id(6), Winner: id(5)},
			{Slot1: id(7), Slot2: id(8), Winner: id(8)},
		},
		Semifinals: [2]brackets.Match{{Winner: id(4)}, {Winner: id(5)}},
		Final:      brackets.Match{Winner: id(5)},
	}
}

func TestResultService_SaveRanking(t *testing.T) {
	f := newResultFixture(t, 1, true)
	ctx := context.Background()

	result, err := f.svc.SaveRanking(ctx, testCompetitionID, xadrezID, models.Ranking{1: 3, 2: 1, 3: 2})
	require.NoError(t, err)
	assert.Equal(t, models.Ranking{1: 3, 2: 1, 3: 2}, result.Ranking)

	modality, err := f.modalities.GetByID(ctx, xadrezID)
	require.NoError(t, err)
	assert.Equal(t, models.ModalityFinished, modality.Status)

	assert.Equal(t, []int{testCompetitionID}, f.notifier.calls)
	require.Len(t, f.broadcaster.messages, 1)
	assert.Equal(t, live.MessageResultSaved, f.broadcaster.messages[0].Type)
}

func TestResultService_SaveRankingReplacesPrevious(t *testing.T) {
	f := newResultFixture(t, 2, true)
	ctx := context.Background()

	first, err := f.svc.SaveRanking(ctx, testCompetitionID, xadrezID, models.Ranking{1: 1})
	require.NoError(t, err)
	second, err := f.svc.SaveRanking(ctx, testCompetitionID, xadrezID, models.Ranking{1: 2, 2: 1})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	stored, err := f.svc.ListResults(ctx, testCompetitionID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, models.Ranking{1: 2, 2: 1}, stored[0].Ranking)
}

func TestResultService_SaveRankingValidation(t *testing.T) {
	tests := []struct {
		name       string
		modalityID int
		ranking    models.Ranking
		wantErr    error
	}{
		{"empty", xadrezID, models.Ranking{}, ErrEmptyRanking},
		{"rank zero", xadrezID, models.Ranking{0: 1}, ErrRankOutOfRange},
		{"rank nine", xadrezID, models.Ranking{1: 1, 9: 2}, ErrRankOutOfRange},
		{"unknown athletic", xadrezID, models.Ranking{1: 99}, ErrUnknownRankingAthletic},
		{"athletic twice", xadrezID, models.Ranking{1: 4, 2: 4}, ErrDuplicateRankingAthletic},
		{"other competition", otherCompModality, models.Ranking{1: 1}, ErrModalityNotInCompetition},
		{"unknown modality", 999, models.Ranking{1: 1}, ErrModalityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newResultFixture(t, 0, true)

			_, err := f.svc.SaveRanking(context.Background(), testCompetitionID, tt.modalityID, tt.ranking)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.results.results)
			assert.Empty(t, f.notifier.calls)
		})
	}
}

func TestResultService_SaveBracket(t *testing.T) {
	f := newResultFixture(t, 1, true)

	result, err := f.svc.SaveBracket(context.Background(), testCompetitionID, futsalID, playedBracket())
	require.NoError(t, err)
	assert.Equal(t, models.Ranking{1: 5, 2: 4, 3: 8, 4: 1, 5: 2, 6: 3, 7: 6, 8: 7}, result.Ranking)
}

func TestResultService_SaveBracketWithImpliedSemifinalWinners(t *testing.T) {
	f := newResultFixture(t, 1, true)
	snapshot := playedBracket()
	snapshot.Semifinals = [2]brackets.Match{{Slot1: id(1), Slot2: id(4)}, {Slot1: id(5), Slot2: id(8)}}
	snapshot.Final = brackets.Match{Slot1: id(4), Slot2: id(5), Winner: id(5)}

	result, err := f.svc.SaveBracket(context.Background(), testCompetitionID, futsalID, snapshot)
	require.NoError(t, err)
	assert.Equal(t, models.Ranking{1: 5, 2: 4, 3: 8, 4: 1, 5: 2, 6: 3, 7: 6, 8: 7}, result.Ranking)
}

func TestResultService_SaveBracketRejections(t *testing.T) {
	t.Run("individual modality", func(t *testing.T) {
		f := newResultFixture(t, 0, true)
		_, err := f.svc.SaveBracket(context.Background(), testCompetitionID, xadrezID, playedBracket())
		assert.ErrorIs(t, err, ErrBracketNotAllowed)
	})

	t.Run("final undecided", func(t *testing.T) {
		f := newResultFixture(t, 0, true)
		snapshot := playedBracket()
		snapshot.Final.Winner = nil

		_, err := f.svc.SaveBracket(context.Background(), testCompetitionID, futsalID, snapshot)
		assert.ErrorIs(t, err, brackets.ErrFinalUndecided)
		assert.Empty(t, f.results.results)
	})

	t.Run("winner outside the match", func(t *testing.T) {
		f := newResultFixture(t, 0, true)
		snapshot := playedBracket()
		snapshot.Quarterfinals[0].Winner = id(7)

		_, err := f.svc.SaveBracket(context.Background(), testCompetitionID, futsalID, snapshot)
		assert.ErrorIs(t, err, ErrInvalidBracket)
	})
}

func TestResultService_PreviewBracket(t *testing.T) {
	f := newResultFixture(t, 0, true)
	snapshot := playedBracket()
	snapshot.Final.Winner = nil

	preview, err := f.svc.PreviewBracket(context.Background(), snapshot)
	require.NoError(t, err)
	assert.False(t, preview.FinalDecided)
	assert.Nil(t, preview.Ranking)
	assert.Equal(t, brackets.Match{Slot1: id(4), Slot2: id(5)}, preview.Bracket.Final)

	preview, err = f.svc.PreviewBracket(context.Background(), playedBracket())
	require.NoError(t, err)
	assert.True(t, preview.FinalDecided)
	assert.Equal(t, 5, preview.Ranking[1])
	assert.Empty(t, f.results.results)
}

func TestResultService_DeleteResult(t *testing.T) {
	f := newResultFixture(t, 2, true)
	ctx := context.Background()

	_, err := f.svc.SaveRanking(ctx, testCompetitionID, xadrezID, models.Ranking{1: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteResult(ctx, testCompetitionID, xadrezID))

	modality, err := f.modalities.GetByID(ctx, xadrezID)
	require.NoError(t, err)
	assert.Equal(t, models.ModalityPending, modality.Status)

	_, err = f.svc.GetResult(ctx, testCompetitionID, xadrezID)
	assert.ErrorIs(t, err, ErrResultNotFound)
	assert.Equal(t, live.MessageResultDeleted, f.broadcaster.messages[len(f.broadcaster.messages)-1].Type)
}

func TestResultService_DeleteMissingResult(t *testing.T) {
	f := newResultFixture(t, 1, false)

	err := f.svc.DeleteResult(context.Background(), testCompetitionID, xadrezID)
	assert.ErrorIs(t, err, ErrResultNotFound)
}
