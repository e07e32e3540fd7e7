package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"frictlistAPI/internal/logger"
	"frictlistAPI/internal/push"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/frict"
	"frictlistAPI/internal/types/user"
)

type pushAction int

const (
	actionRequestSent pushAction = iota
	actionRequestResponded
	actionFrictAdded
	actionFrictUpdated
)

type pushJob struct {
	action    pushAction
	requestID int64
	mateID    int64
	frictID   int64
	actorUID  int64
	editor    frict.Side
	accepted  bool
}

// PushDispatcher resolves which counterpart a mutation must notify and
// hands the message to a transport. It runs strictly after the triggering
// transaction commits, and nothing it does can fail that mutation: a full
// queue, a missing token or a dead gateway are all logged and dropped.
type PushDispatcher struct {
	users    store.UserStore
	mates    store.MateStore
	requests store.RequestStore
	fricts   store.FrictStore

	// one transport per device platform
	providers map[int]push.Provider

	jobQueue chan pushJob
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewPushDispatcher(users store.UserStore, mates store.MateStore, requests store.RequestStore, fricts store.FrictStore) *PushDispatcher {
	d := &PushDispatcher{
		users:     users,
		mates:     mates,
		requests:  requests,
		fricts:    fricts,
		providers: make(map[int]push.Provider),
		jobQueue:  make(chan pushJob, 100),
		stopChan:  make(chan struct{}),
	}

	for i := 0; i < 5; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// SetProvider registers the transport for a device platform.
func (d *PushDispatcher) SetProvider(platform int, provider push.Provider) {
	d.providers[platform] = provider
}

func (d *PushDispatcher) Stop() {
	close(d.stopChan)
	d.wg.Wait()
}

func (d *PushDispatcher) NotifyRequestSent(senderUID, requestID int64) {
	d.enqueue(pushJob{action: actionRequestSent, actorUID: senderUID, requestID: requestID})
}

func (d *PushDispatcher) NotifyRequestResponded(responderUID, requestID int64, accepted bool) {
	d.enqueue(pushJob{action: actionRequestResponded, actorUID: responderUID, requestID: requestID, accepted: accepted})
}

func (d *PushDispatcher) NotifyFrictAdded(mateID int64, editor frict.Side) {
	d.enqueue(pushJob{action: actionFrictAdded, mateID: mateID, editor: editor})
}

func (d *PushDispatcher) NotifyFrictUpdated(mateID, frictID int64, editor frict.Side) {
	d.enqueue(pushJob{action: actionFrictUpdated, mateID: mateID, frictID: frictID, editor: editor})
}

func (d *PushDispatcher) enqueue(job pushJob) {
	select {
	case d.jobQueue <- job:
	default:
		logger.Warnf("Push queue full, dropping notification (action=%d)", job.action)
	}
}

func (d *PushDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.process(job)
		case <-d.stopChan:
			return
		}
	}
}

func (d *PushDispatcher) process(job pushJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	device, message, err := d.resolve(ctx, job)
	if err != nil {
		logger.Errorf("Push resolution failed (action=%d): %v", job.action, err)
		return
	}
	if message == "" {
		return
	}
	if !device.HasToken() {
		// No registered device is an expected condition, not an error.
		return
	}

	provider, ok := d.providers[device.Platform]
	if !ok {
		logger.Warnf("No push provider for platform %d", device.Platform)
		return
	}

	if err := provider.Send(ctx, device.Token, message); err != nil {
		logger.Errorf("Push delivery failed: %v", err)
	}
}

// resolve picks the recipient device and builds the alert text. For frict
// edits the recipient is always the side opposite the editor, and nothing
// is sent at all unless the relationship is shared. An empty message means
// "nothing to send".
func (d *PushDispatcher) resolve(ctx context.Context, job pushJob) (user.Device, string, error) {
	switch job.action {
	case actionRequestSent:
		first, last, err := d.users.Name(ctx, job.actorUID)
		if err != nil {
			return user.Device{}, "", err
		}
		device, err := d.requests.RecipientDevice(ctx, job.requestID)
		if err != nil {
			return user.Device{}, "", err
		}
		return device, fmt.Sprintf("%s %s sent you a request", first, last), nil

	case actionRequestResponded:
		first, last, err := d.users.Name(ctx, job.actorUID)
		if err != nil {
			return user.Device{}, "", err
		}
		device, err := d.requests.SenderDevice(ctx, job.requestID)
		if err != nil {
			return user.Device{}, "", err
		}
		verb := "rejected"
		if job.accepted {
			verb = "accepted"
		}
		return device, fmt.Sprintf("%s %s %s your request", first, last, verb), nil

	case actionFrictAdded, actionFrictUpdated:
		accepted, err := d.mates.Accepted(ctx, job.mateID)
		if err != nil {
			return user.Device{}, "", err
		}
		if accepted <= 0 {
			return user.Device{}, "", nil
		}

		device, first, last, err := d.oppositeSide(ctx, job.mateID, job.editor)
		if err != nil {
			return user.Device{}, "", err
		}

		if job.action == actionFrictAdded {
			return device, fmt.Sprintf("%s %s added a frict to your frictlist", first, last), nil
		}

		date, err := d.fricts.FromDate(ctx, job.frictID)
		if err != nil {
			return user.Device{}, "", err
		}
		return device, fmt.Sprintf("%s %s updated your %s frict", first, last, humanDate(date)), nil
	}

	return user.Device{}, "", fmt.Errorf("unknown push action %d", job.action)
}

// oppositeSide returns the device of the side opposite the editor together
// with the editor's display name: the mate owner's profile name when the
// owner edited, the contact name recorded on the mate entry when the
// counterpart did.
func (d *PushDispatcher) oppositeSide(ctx context.Context, mateID int64, editor frict.Side) (user.Device, string, string, error) {
	if editor == frict.CreatorSide {
		first, last, err := d.mates.OwnerName(ctx, mateID)
		if err != nil {
			return user.Device{}, "", "", err
		}
		device, err := d.mates.CounterpartDevice(ctx, mateID)
		if err != nil {
			return user.Device{}, "", "", err
		}
		return device, first, last, nil
	}

	first, last, err := d.mates.Name(ctx, mateID)
	if err != nil {
		return user.Device{}, "", "", err
	}
	device, err := d.mates.OwnerDevice(ctx, mateID)
	if err != nil {
		return user.Device{}, "", "", err
	}
	return device, first, last, nil
}

// humanDate renders a stored from-date like "April 30, 2014"; an
// unparseable value passes through untouched.
func humanDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
