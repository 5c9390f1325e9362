package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
)

func TestReply_CountsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := llm.NewMockClient(ctrl)
	client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(llm.Reply{}, errors.New("down"))
	client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(llm.Reply{Text: "hi"}, nil)

	errorsBefore := testutil.ToFloat64(replies.WithLabelValues(outcomeError))
	textBefore := testutil.ToFloat64(replies.WithLabelValues(outcomeText))

	b := NewBridge(client)
	b.Reply(context.Background(), Conversation{Prompt: "x", Language: i18n.EN}, NewMockMutator(ctrl))
	b.Reply(context.Background(), Conversation{Prompt: "x", Language: i18n.EN}, NewMockMutator(ctrl))

	assert.Equal(t, errorsBefore+1, testutil.ToFloat64(replies.WithLabelValues(outcomeError)))
	assert.Equal(t, textBefore+1, testutil.ToFloat64(replies.WithLabelValues(outcomeText)))
}
