package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderText(t *testing.T) {
	approved := NotificationEvent{Kind: KindTicketApproved, Subject: "Jazz Night"}
	assert.Equal(t, `Your booking for "Jazz Night" was approved.`, RenderText(approved))

	rejected := NotificationEvent{Kind: KindTicketRejected, Subject: "Jazz Night"}
	assert.Contains(t, RenderText(rejected), "rejected")
	assert.Contains(t, RenderText(rejected), "released")

	clubReq := NotificationEvent{Kind: KindClubRequestResolved, Subject: "Chess Club", Status: "approved"}
	assert.Equal(t, `Your club request "Chess Club" was approved.`, RenderText(clubReq))

	eventReq := NotificationEvent{Kind: KindEventRequestResolved, Subject: "Open Day", Status: "rejected"}
	assert.Equal(t, `Your event request "Open Day" was rejected.`, RenderText(eventReq))

	unknown := NotificationEvent{Kind: "something.else", Subject: "X", Status: "done"}
	assert.Equal(t, "X: done", RenderText(unknown))
}
