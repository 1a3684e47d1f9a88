package messaging

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	matchParticipants map[int64][2]int64
	conversations     map[int64]*Conversation
	byMatch           map[int64]int64
	messages          []*Message
	reads             [][2]int64
	nextConvID        int64
	nextMsgID         int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		matchParticipants: map[int64][2]int64{},
		conversations:     map[int64]*Conversation{},
		byMatch:           map[int64]int64{},
	}
}

func (f *fakeRepository) GetMatchParticipants(ctx context.Context, matchID int64) (int64, int64, error) {
	p, ok := f.matchParticipants[matchID]
	if !ok {
		return 0, 0, ErrMatchNotFound
	}
	return p[0], p[1], nil
}

func (f *fakeRepository) GetOrCreateConversation(ctx context.Context, matchID, workerID, employerID int64) (*Conversation, error) {
	if id, ok := f.byMatch[matchID]; ok {
		return f.conversations[id], nil
	}
	f.nextConvID++
	mid := matchID
	conv := &Conversation{
		ID:         f.nextConvID,
		MatchID:    &mid,
		WorkerID:   workerID,
		EmployerID: employerID,
		CreatedAt:  time.Now(),
	}
	f.conversations[conv.ID] = conv
	f.byMatch[matchID] = conv.ID
	return conv, nil
}

func (f *fakeRepository) GetConversation(ctx context.Context, conversationID int64) (*Conversation, error) {
	conv, ok := f.conversations[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (f *fakeRepository) InsertMessage(ctx context.Context, msg *Message) error {
	f.nextMsgID++
	msg.ID = f.nextMsgID
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, msg)

	conv := f.conversations[msg.ConversationID]
	conv.LastMessageID = &msg.ID
	conv.LastMessageAt = &msg.CreatedAt
	return nil
}

func (f *fakeRepository) ListConversations(ctx context.Context, userID int64) ([]*ConversationSummary, error) {
	return nil, nil
}

func (f *fakeRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]*Message, error) {
	out := []*Message{}
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	f.reads = append(f.reads, [2]int64{conversationID, readerID})
	return nil
}

type fakeNotifier struct {
	received []string
}

func (f *fakeNotifier) MessageReceived(ctx context.Context, recipientID, senderID, conversationID int64, preview string) {
	f.received = append(f.received, preview)
}

func TestSendMessageCreatesConversationLazily(t *testing.T) {
	repo := newFakeRepository()
	repo.matchParticipants[5] = [2]int64{1, 2}
	svc := NewService(repo, &fakeNotifier{})

	ctx := context.Background()
	assert.Empty(t, repo.conversations, "no conversation before the first message")

	msg, err := svc.SendMessage(ctx, 1, &SendMessageRequest{MatchID: 5, Content: "hello"})
	require.NoError(t, err)
	assert.Len(t, repo.conversations, 1)

	// Second message reuses the same conversation.
	msg2, err := svc.SendMessage(ctx, 2, &SendMessageRequest{MatchID: 5, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, msg.ConversationID, msg2.ConversationID)
	assert.Len(t, repo.conversations, 1)
}

func TestSendMessageByStranger(t *testing.T) {
	repo := newFakeRepository()
	repo.matchParticipants[5] = [2]int64{1, 2}
	svc := NewService(repo, &fakeNotifier{})

	_, err := svc.SendMessage(context.Background(), 42, &SendMessageRequest{MatchID: 5, Content: "let me in"})
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.Empty(t, repo.conversations)
}

func TestSendMessageUnknownMatch(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeNotifier{})

	_, err := svc.SendMessage(context.Background(), 1, &SendMessageRequest{MatchID: 99, Content: "hello"})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSendMessageNotifiesOfflineRecipient(t *testing.T) {
	repo := newFakeRepository()
	repo.matchParticipants[5] = [2]int64{1, 2}
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	_, err := svc.SendMessage(context.Background(), 1, &SendMessageRequest{MatchID: 5, Content: "are you there?"})
	require.NoError(t, err)

	require.Len(t, notifier.received, 1)
	assert.Equal(t, "are you there?", notifier.received[0])
}

func TestSendMessagePreviewTruncated(t *testing.T) {
	repo := newFakeRepository()
	repo.matchParticipants[5] = [2]int64{1, 2}
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	long := strings.Repeat("x", 200)
	_, err := svc.SendMessage(context.Background(), 1, &SendMessageRequest{MatchID: 5, Content: long})
	require.NoError(t, err)

	require.Len(t, notifier.received, 1)
	assert.Equal(t, strings.Repeat("x", 80)+"...", notifier.received[0])
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	repo := newFakeRepository()
	repo.matchParticipants[5] = [2]int64{1, 2}
	svc := NewService(repo, &fakeNotifier{})

	ctx := context.Background()
	msg, err := svc.SendMessage(ctx, 1, &SendMessageRequest{MatchID: 5, Content: "hello"})
	require.NoError(t, err)

	got, err := svc.ListMessages(ctx, 2, msg.ConversationID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.ListMessages(ctx, 42, msg.ConversationID, 50, 0)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestMarkRead(t *testing.T) {
	repo := newFakeRepository()
	repo.matchParticipants[5] = [2]int64{1, 2}
	svc := NewService(repo, &fakeNotifier{})

	ctx := context.Background()
	msg, err := svc.SendMessage(ctx, 1, &SendMessageRequest{MatchID: 5, Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, 2, msg.ConversationID))
	assert.Equal(t, [][2]int64{{msg.ConversationID, 2}}, repo.reads)

	assert.ErrorIs(t, svc.MarkRead(ctx, 42, msg.ConversationID), ErrNotParticipant)
}

func TestConversationParticipants(t *testing.T) {
	repo := newFakeRepository()
	repo.matchParticipants[5] = [2]int64{1, 2}
	svc := NewService(repo, &fakeNotifier{})

	ctx := context.Background()
	msg, err := svc.SendMessage(ctx, 1, &SendMessageRequest{MatchID: 5, Content: "hello"})
	require.NoError(t, err)

	workerID, employerID, err := svc.ConversationParticipants(ctx, msg.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), workerID)
	assert.Equal(t, int64(2), employerID)
}
