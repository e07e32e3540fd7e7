package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frictlistAPI/internal/types/frict"
	"frictlistAPI/internal/types/mate"
	"frictlistAPI/internal/types/user"
)

type fakeProvider struct {
	tokens   []string
	messages []string
	err      error
}

func (p *fakeProvider) Send(_ context.Context, token, message string) error {
	p.tokens = append(p.tokens, token)
	p.messages = append(p.messages, message)
	return p.err
}

func newDispatcher(t *testing.T) (*PushDispatcher, *fakeUsers, *fakeMates, *fakeRequests, *fakeFricts) {
	users, mates, requests, fricts := newFakeUsers(), newFakeMates(), newFakeRequests(), newFakeFricts()
	d := NewPushDispatcher(users, mates, requests, fricts)
	t.Cleanup(d.Stop)
	return d, users, mates, requests, fricts
}

func TestResolveRequestSentTargetsRecipient(t *testing.T) {
	d, users, _, requests, _ := newDispatcher(t)
	users.users[7] = &user.User{UID: 7, FirstName: "Ann", LastName: "Lee"}
	requests.recipDevs[1] = user.Device{Token: "tok-recipient", Platform: user.PlatformAndroid}

	device, message, err := d.resolve(context.Background(), pushJob{
		action: actionRequestSent, actorUID: 7, requestID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee sent you a request", message)
	assert.Equal(t, "tok-recipient", device.Token)
}

func TestResolveRequestRespondedVerbs(t *testing.T) {
	d, users, _, requests, _ := newDispatcher(t)
	users.users[9] = &user.User{UID: 9, FirstName: "Maya", LastName: "Reed"}
	requests.senderDevs[1] = user.Device{Token: "tok-sender", Platform: user.PlatformIOS}

	_, message, err := d.resolve(context.Background(), pushJob{
		action: actionRequestResponded, actorUID: 9, requestID: 1, accepted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Maya Reed accepted your request", message)

	device, message, err := d.resolve(context.Background(), pushJob{
		action: actionRequestResponded, actorUID: 9, requestID: 1, accepted: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Maya Reed rejected your request", message)
	assert.Equal(t, "tok-sender", device.Token)
}

func TestResolveFrictEditsSkipUnsharedRelationships(t *testing.T) {
	d, _, mates, _, _ := newDispatcher(t)
	mates.mates[1] = &mate.Mate{MateID: 1, Accepted: mate.AcceptedPending}

	_, message, err := d.resolve(context.Background(), pushJob{
		action: actionFrictAdded, mateID: 1, editor: frict.CreatorSide,
	})
	require.NoError(t, err)
	assert.Empty(t, message, "an unshared timeline has no counterpart to tell")
}

func TestResolveFrictAddedByCreatorTargetsCounterpart(t *testing.T) {
	d, _, mates, _, _ := newDispatcher(t)
	mates.mates[1] = &mate.Mate{MateID: 1, Accepted: mate.AcceptedShared}
	mates.ownerNames[1] = [2]string{"Ann", "Lee"}
	mates.counterDevs[1] = user.Device{Token: "tok-counterpart", Platform: user.PlatformAndroid}

	device, message, err := d.resolve(context.Background(), pushJob{
		action: actionFrictAdded, mateID: 1, editor: frict.CreatorSide,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee added a frict to your frictlist", message)
	assert.Equal(t, "tok-counterpart", device.Token)
}

func TestResolveFrictUpdatedByCounterpartTargetsOwner(t *testing.T) {
	d, _, mates, _, fricts := newDispatcher(t)
	mates.mates[1] = &mate.Mate{MateID: 1, FirstName: "Maya", LastName: "Reed", Accepted: mate.AcceptedShared}
	mates.ownerDevs[1] = user.Device{Token: "tok-owner", Platform: user.PlatformIOS}
	frictID, _ := fricts.Insert(context.Background(), 1, editBy(0), testTime())

	device, message, err := d.resolve(context.Background(), pushJob{
		action: actionFrictUpdated, mateID: 1, frictID: frictID, editor: frict.CounterpartSide,
	})
	require.NoError(t, err)
	assert.Equal(t, "Maya Reed updated your April 30, 2014 frict", message)
	assert.Equal(t, "tok-owner", device.Token)
}

func TestProcessRoutesByPlatform(t *testing.T) {
	d, users, _, requests, _ := newDispatcher(t)
	ios := &fakeProvider{}
	android := &fakeProvider{}
	d.SetProvider(user.PlatformIOS, ios)
	d.SetProvider(user.PlatformAndroid, android)

	users.users[7] = &user.User{UID: 7, FirstName: "Ann", LastName: "Lee"}
	requests.recipDevs[1] = user.Device{Token: "tok-android", Platform: user.PlatformAndroid}

	d.process(pushJob{action: actionRequestSent, actorUID: 7, requestID: 1})

	assert.Empty(t, ios.tokens)
	require.Equal(t, []string{"tok-android"}, android.tokens)
	assert.Equal(t, []string{"Ann Lee sent you a request"}, android.messages)
}

func TestProcessSkipsAbsentTokens(t *testing.T) {
	d, users, _, requests, _ := newDispatcher(t)
	android := &fakeProvider{}
	d.SetProvider(user.PlatformAndroid, android)
	users.users[7] = &user.User{UID: 7, FirstName: "Ann", LastName: "Lee"}

	for _, token := range []string{"", user.TokenAbsent} {
		requests.recipDevs[1] = user.Device{Token: token, Platform: user.PlatformAndroid}
		d.process(pushJob{action: actionRequestSent, actorUID: 7, requestID: 1})
	}

	assert.Empty(t, android.tokens)
}

func TestHumanDatePassesUnparseableThrough(t *testing.T) {
	assert.Equal(t, "April 30, 2014", humanDate("2014-04-30"))
	assert.Equal(t, "sometime", humanDate("sometime"))
}
