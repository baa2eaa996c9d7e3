package endpoints

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server/store"
)

func TestCreateCampaign(t *testing.T) {
	ts := newTestServer(t)

	ts.Campaigns.On("CreateCampaign", mock.AnythingOfType("*model.Campaign")).
		Run(func(args mock.Arguments) {
			campaign := args.Get(0).(*model.Campaign)
			campaign.ID = uuid.New()
			campaign.Status = model.CampaignStatusDraft
		}).
		Return(nil)

	w := ts.request(t, "POST", "/campaigns", map[string]string{"name": "Summer Sale"})
	assertStatus(t, w, http.StatusCreated)

	var got model.Campaign
	decodeBody(t, w, &got)
	assert.Equal(t, model.CampaignStatusDraft, got.Status)
	assert.False(t, got.Approved)
}

func TestLaunchCampaign(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.Campaigns.On("TransitionCampaign", ts.UserID, id, model.CampaignStatusRunning).
		Return(&model.Campaign{ID: id, OwnerID: ts.UserID, Name: "Summer Sale", Status: model.CampaignStatusRunning}, nil)

	w := ts.request(t, "POST", "/campaigns/"+id.String()+"/launch", nil)
	assertStatus(t, w, http.StatusOK)

	var got model.Campaign
	decodeBody(t, w, &got)
	assert.Equal(t, model.CampaignStatusRunning, got.Status)
}

func TestCompleteCampaignInvalidTransition(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.Campaigns.On("TransitionCampaign", ts.UserID, id, model.CampaignStatusCompleted).
		Return(nil, store.ErrInvalidTransition)

	w := ts.request(t, "POST", "/campaigns/"+id.String()+"/complete", nil)
	assertStatus(t, w, http.StatusUnprocessableEntity)
}

func TestTransitionCampaignNotFound(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.Campaigns.On("TransitionCampaign", ts.UserID, id, model.CampaignStatusPaused).
		Return(nil, store.ErrNotFound)

	w := ts.request(t, "POST", "/campaigns/"+id.String()+"/pause", nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestApproveCampaignOnce(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.Campaigns.On("ApproveCampaign", ts.UserID, id).
		Return(&model.Campaign{ID: id, OwnerID: ts.UserID, Status: model.CampaignStatusDraft, Approved: true}, nil).Once()
	ts.Campaigns.On("ApproveCampaign", ts.UserID, id).
		Return(nil, store.ErrAlreadyApproved)

	w := ts.request(t, "POST", "/campaigns/"+id.String()+"/approve", nil)
	assertStatus(t, w, http.StatusOK)

	var got model.Campaign
	decodeBody(t, w, &got)
	assert.True(t, got.Approved)

	w = ts.request(t, "POST", "/campaigns/"+id.String()+"/approve", nil)
	assertStatus(t, w, http.StatusUnprocessableEntity)
}

func TestUpdateCampaignMetrics(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()
	conversions := int64(90)

	ts.Campaigns.On("UpdateCampaignMetrics", ts.UserID, id, model.CampaignMetrics{Conversions: &conversions}).
		Return(&model.Campaign{
			ID: id, OwnerID: ts.UserID, Status: model.CampaignStatusRunning,
			Impressions: 1000, Clicks: 45, Conversions: 90,
			ClickThroughRate: 4.5, ConversionRate: 20.0,
		}, nil)

	w := ts.request(t, "PATCH", "/campaigns/"+id.String()+"/metrics", map[string]int64{"conversions": 90})
	assertStatus(t, w, http.StatusOK)

	var got model.Campaign
	decodeBody(t, w, &got)
	assert.Equal(t, int64(90), got.Conversions)
	assert.Equal(t, 4.5, got.ClickThroughRate)
}

func TestDeleteCampaignMalformedID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, "DELETE", "/campaigns/not-a-uuid", nil)
	assertStatus(t, w, http.StatusBadRequest)
	ts.Campaigns.AssertNotCalled(t, "DeleteCampaign", mock.Anything, mock.Anything)
}
