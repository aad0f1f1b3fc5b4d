//go:build integration_test

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/achievements"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/sets"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/middleware"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any, expectedStatus int, out any) {
	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set(middleware.AuthTokenHeader, testSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), expectedStatus, resp.StatusCode, string(respBytes))

	if out != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, out))
	}
}

func (s *IntegrationTestSuite) addSet(ctx context.Context, userID string, set sets.SetRecord) sets.AddSetResult {
	var result sets.AddSetResult
	s.doRequest(ctx, "POST", fmt.Sprintf("/gymstats/users/%s/sets", userID), set, http.StatusCreated, &result)
	return result
}

func (s *IntegrationTestSuite) TestUnauthorized() {
	resp, err := s.httpClient.Get(serverEndpoint + "/gymstats/users/someone/prs")
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestSetsAndProgression() {
	ctx := context.Background()
	userID := gofakeit.Username()
	now := time.Now().UTC()

	for i := 2; i >= 0; i-- {
		set := sets.NewNormalSet("bench_press", 60, 12, now.AddDate(0, 0, -i))
		set.MuscleGroup = "chest"
		result := s.addSet(ctx, userID, set)
		assert.NotEmpty(s.T(), result.Set.ID)
		if i == 2 {
			require.NotNil(s.T(), result.PersonalRecord, "first set is a personal record")
			assert.Equal(s.T(), 60.0, result.PersonalRecord.Weight)
		} else {
			assert.Nil(s.T(), result.PersonalRecord, "same weight is not a new record")
		}
	}

	heavier := s.addSet(ctx, userID, sets.NewNormalSet("squat", 100, 5, now))
	require.NotNil(s.T(), heavier.PersonalRecord)

	var history []sets.SetRecord
	s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/exercises/bench_press/sets", userID), nil, http.StatusOK, &history)
	require.Len(s.T(), history, 3)

	var suggestion progression.Suggestion
	s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/exercises/bench_press/suggestion", userID), nil, http.StatusOK, &suggestion)
	assert.Equal(s.T(), progression.SuggestionIncreaseWeight, suggestion.Type)
	assert.Equal(s.T(), 62.5, suggestion.SuggestedWeight)
	assert.Equal(s.T(), 8.0, suggestion.SuggestedReps)

	s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/exercises/deadlift/suggestion", userID), nil, http.StatusNoContent, nil)

	var recent []string
	s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/exercises/recent", userID), nil, http.StatusOK, &recent)
	assert.Equal(s.T(), []string{"squat", "bench_press"}, recent)

	var deleted sets.DeleteSetResponse
	s.doRequest(ctx, "DELETE", fmt.Sprintf("/gymstats/users/%s/sets/%s", userID, heavier.Set.ID), nil, http.StatusOK, &deleted)
	assert.Equal(s.T(), heavier.Set.ID, deleted.DeletedID)
	s.doRequest(ctx, "DELETE", fmt.Sprintf("/gymstats/users/%s/sets/%s", userID, heavier.Set.ID), nil, http.StatusNotFound, nil)
}

func (s *IntegrationTestSuite) TestSuggestionSkipsDropSets() {
	ctx := context.Background()
	userID := gofakeit.Username()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		s.addSet(ctx, userID, sets.NewNormalSet("dips", 20, 12, now.Add(-time.Duration(100-i)*time.Minute)))
	}
	// more drop sets than the suggestion window holds, all newer than the normal sets
	for i := 0; i < 55; i++ {
		dropSet := sets.NewDropSet("dips", []sets.Segment{{Weight: 15, Reps: 6}, {Weight: 10, Reps: 6}}, now.Add(-time.Duration(55-i)*time.Second))
		s.addSet(ctx, userID, dropSet)
	}

	var suggestion progression.Suggestion
	s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/exercises/dips/suggestion", userID), nil, http.StatusOK, &suggestion)
	assert.Equal(s.T(), progression.SuggestionIncreaseWeight, suggestion.Type)
	assert.Equal(s.T(), 22.5, suggestion.SuggestedWeight)
	assert.Equal(s.T(), 3, suggestion.Stats.TotalSets)
}

func (s *IntegrationTestSuite) TestWorkoutsAndAchievements() {
	ctx := context.Background()
	userID := gofakeit.Username()
	now := time.Now().UTC()

	s.doRequest(ctx, "POST", fmt.Sprintf("/gymstats/users/%s/workouts/finish", userID), nil, http.StatusNotFound, nil)

	for i := 2; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		s.addSet(ctx, userID, sets.NewNormalSet("row", 50, 10, day))
	}

	var started workouts.WorkoutLog
	s.doRequest(ctx, "POST", fmt.Sprintf("/gymstats/users/%s/workouts/start", userID), nil, http.StatusOK, &started)
	require.NotNil(s.T(), started.StartedAt)

	var finished workouts.WorkoutLog
	s.doRequest(ctx, "POST", fmt.Sprintf("/gymstats/users/%s/workouts/finish", userID), nil, http.StatusOK, &finished)
	require.NotNil(s.T(), finished.EndedAt)

	var result achievements.EvaluationResult
	s.doRequest(ctx, "POST", fmt.Sprintf("/gymstats/users/%s/achievements/evaluate?tz=UTC", userID), nil, http.StatusOK, &result)
	assert.Contains(s.T(), result.NewlyUnlocked, "streak_3")
	assert.Contains(s.T(), result.NewlyUnlocked, "workouts_1")
	assert.Contains(s.T(), result.NewlyUnlocked, "prs_1")
	require.NotNil(s.T(), result.Celebrate)
	assert.Equal(s.T(), result.NewlyUnlocked[0], result.Celebrate.ID)

	// a second evaluation finds nothing new
	var again achievements.EvaluationResult
	s.doRequest(ctx, "POST", fmt.Sprintf("/gymstats/users/%s/achievements/evaluate?tz=UTC", userID), nil, http.StatusOK, &again)
	assert.Empty(s.T(), again.NewlyUnlocked)
	assert.Nil(s.T(), again.Celebrate)
	assert.Equal(s.T(), result.TotalPoints, again.TotalPoints)

	var overview achievements.Overview
	s.doRequest(ctx, "GET", fmt.Sprintf("/gymstats/users/%s/achievements?tz=UTC", userID), nil, http.StatusOK, &overview)
	assert.Len(s.T(), overview.Achievements, len(achievements.Catalog()))
	assert.Equal(s.T(), len(again.UnlockedIDs), overview.UnlockedCount)
}
