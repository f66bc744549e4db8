package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dkovac/relay/internal/domain"
)

type fakeMessageRepo struct {
	messages  []domain.Message
	createErr error
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListConversation(_ context.Context, userID, otherID uuid.UUID) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if (m.SenderID == userID && m.ReceiverID == otherID) ||
			(m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	receivers []uuid.UUID
	messages  []*domain.Message
}

func (n *fakeNotifier) NotifyNewMessage(receiverID uuid.UUID, msg *domain.Message) {
	n.receivers = append(n.receivers, receiverID)
	n.messages = append(n.messages, msg)
}

func newMessageService(msgRepo *fakeMessageRepo, uploader *fakeUploader, notifier Notifier) *MessageService {
	svc := NewMessageService(msgRepo, newFakeUserRepo(), uploader)
	if notifier != nil {
		svc.SetNotifier(notifier)
	}
	return svc
}

func TestMessageService_SendNotifiesReceiverOnce(t *testing.T) {
	t.Parallel()

	msgRepo := &fakeMessageRepo{}
	notifier := &fakeNotifier{}
	svc := newMessageService(msgRepo, &fakeUploader{}, notifier)

	sender, receiver := uuid.New(), uuid.New()
	msg, err := svc.Send(context.Background(), sender, receiver, "hi", "")
	require.NoError(t, err)
	require.NotNil(t, msg.Text)
	require.Equal(t, "hi", *msg.Text)
	require.Nil(t, msg.Image)

	require.Len(t, notifier.receivers, 1)
	require.Equal(t, receiver, notifier.receivers[0])
	require.Equal(t, msg.ID, notifier.messages[0].ID)

	require.Len(t, msgRepo.messages, 1)
}

func TestMessageService_SendWithoutNotifierStillPersists(t *testing.T) {
	t.Parallel()

	msgRepo := &fakeMessageRepo{}
	svc := newMessageService(msgRepo, &fakeUploader{}, nil)

	sender, receiver := uuid.New(), uuid.New()
	msg, err := svc.Send(context.Background(), sender, receiver, "hi", "")
	require.NoError(t, err)

	// Offline receiver: no delivery, but history still has the message.
	history, err := svc.GetConversation(context.Background(), receiver, sender)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, msg.ID, history[0].ID)
}

func TestMessageService_SendRejectsEmptyMessage(t *testing.T) {
	t.Parallel()

	msgRepo := &fakeMessageRepo{}
	notifier := &fakeNotifier{}
	svc := newMessageService(msgRepo, &fakeUploader{}, notifier)

	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), "", "")
	require.ErrorIs(t, err, ErrEmptyMessage)
	require.Empty(t, msgRepo.messages)
	require.Empty(t, notifier.receivers)
}

func TestMessageService_SendUploadsImageBeforePersisting(t *testing.T) {
	t.Parallel()

	msgRepo := &fakeMessageRepo{}
	uploader := &fakeUploader{url: "http://localhost:9000/relay-images/pic.png"}
	svc := newMessageService(msgRepo, uploader, &fakeNotifier{})

	msg, err := svc.Send(context.Background(), uuid.New(), uuid.New(), "", "data:image/png;base64,aGk=")
	require.NoError(t, err)
	require.Nil(t, msg.Text)
	require.NotNil(t, msg.Image)
	require.Equal(t, uploader.url, *msg.Image)
	require.Equal(t, 1, uploader.calls)
}

func TestMessageService_UploadFailureAbortsSend(t *testing.T) {
	t.Parallel()

	msgRepo := &fakeMessageRepo{}
	notifier := &fakeNotifier{}
	svc := newMessageService(msgRepo, &fakeUploader{err: errors.New("object store down")}, notifier)

	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), "caption", "data:image/png;base64,aGk=")
	require.Error(t, err)

	// No partial message, no delivery.
	require.Empty(t, msgRepo.messages)
	require.Empty(t, notifier.receivers)
}

func TestMessageService_PersistFailureSkipsNotify(t *testing.T) {
	t.Parallel()

	msgRepo := &fakeMessageRepo{createErr: errors.New("db down")}
	notifier := &fakeNotifier{}
	svc := newMessageService(msgRepo, &fakeUploader{}, notifier)

	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), "hi", "")
	require.Error(t, err)
	require.Empty(t, notifier.receivers)
}

func TestMessageService_ConversationSymmetric(t *testing.T) {
	t.Parallel()

	msgRepo := &fakeMessageRepo{}
	svc := newMessageService(msgRepo, &fakeUploader{}, nil)

	a, b := uuid.New(), uuid.New()
	_, err := svc.Send(context.Background(), a, b, "one", "")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), b, a, "two", "")
	require.NoError(t, err)

	ab, err := svc.GetConversation(context.Background(), a, b)
	require.NoError(t, err)
	ba, err := svc.GetConversation(context.Background(), b, a)
	require.NoError(t, err)

	require.Equal(t, ab, ba)
	require.Len(t, ab, 2)
}

func TestMessageService_GetConversationEmptyIsNotNil(t *testing.T) {
	t.Parallel()

	svc := newMessageService(&fakeMessageRepo{}, &fakeUploader{}, nil)

	history, err := svc.GetConversation(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, history)
	require.Empty(t, history)
}
